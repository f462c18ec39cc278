package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ivlev/sceneanim/internal/config"
	"github.com/ivlev/sceneanim/internal/scene"
	"github.com/ivlev/sceneanim/internal/source"
	"github.com/ivlev/sceneanim/internal/store"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"play", "run a headless playback session and print live poses", runPlay},
	{"bake", "sample scenes at a fixed frame rate into YAML pose tracks", runBake},
	{"timeline", "render the keyframe timeline of a scene to PNG", runTimeline},
	{"share", "write a QR code pointing the playback page at a saved scene", runShare},
	{"save", "copy a scene file into local app storage", runSave},
	{"load", "export a scene from local app storage to a file", runLoad},
	{"autocam", "generate a camera path that visits every asset", runAutocam},
	{"validate", "check that scenes load", runValidate},
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	for _, c := range commands {
		if c.name == name {
			if err := c.run(os.Args[2:]); err != nil {
				log.Fatalf("[-] %s: %v", name, err)
			}
			return
		}
	}

	if name == "-h" || name == "--help" || name == "help" {
		usage()
		return
	}
	if name == "version" {
		fmt.Println(version)
		return
	}
	fmt.Fprintf(os.Stderr, "[-] unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "sceneanim %s\n\nUsage: sceneanim <command> [flags]\n\nCommands:\n", version)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nA scene argument is a .json/.yaml file or %s<key>.\n", source.StorePrefix)
}

// common holds the flags every command accepts.
type common struct {
	configPath string
	mode       string
	verbose    bool
}

func newFlagSet(name string, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML or TOML settings file")
	fs.StringVar(&c.mode, "mode", "", "playback preset: preview (loops, 5s minimum) or timeline (stops at the end)")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	return fs
}

// settings loads the config file if any, then applies the -mode flag over it.
func (c *common) settings() (*config.Config, error) {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return nil, err
		}
		fmt.Printf("[*] Settings: %s\n", c.configPath)
	}
	if c.mode != "" {
		if err := cfg.ApplyMode(c.mode); err != nil {
			return nil, err
		}
	}
	cfg.BuildVersion = version
	return cfg, cfg.Validate()
}

func storeOpener(cfg *config.Config) func() (*store.Store, error) {
	return func() (*store.Store, error) {
		return store.Open(cfg.AppName)
	}
}

// resolveScene turns a scene argument into a source, picking the newest file in the
// default scenes directory when arg is empty.
func resolveScene(arg string, cfg *config.Config) (source.Source, error) {
	if arg == "" {
		latest, err := scene.FindLatestScene(scene.DefaultDir)
		if err != nil {
			return nil, fmt.Errorf("%w. Put a scene into %s/ or pass -scene", err, scene.DefaultDir)
		}
		arg = latest
		fmt.Printf("[*] Selected scene: %s\n", arg)
	}
	return source.New(arg, storeOpener(cfg))
}
