package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/sceneanim/internal/scene"
	"github.com/ivlev/sceneanim/internal/store"
)

// StorePrefix marks a scene argument that names a store key instead of a file.
const StorePrefix = "store:"

// Source yields a scene record.
type Source interface {
	Name() string
	Load() (*scene.Scene, error)
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return f.path }

func (f *FileSource) Path() string { return f.path }

func (f *FileSource) Load() (*scene.Scene, error) {
	return scene.ReadScene(f.path)
}

// StoreSource reads the scene saved under a key in local app storage.
type StoreSource struct {
	store *store.Store
	key   string
}

func NewStoreSource(st *store.Store, key string) *StoreSource {
	if key == "" {
		key = store.DefaultKey
	}
	return &StoreSource{store: st, key: key}
}

func (s *StoreSource) Name() string { return StorePrefix + s.key }

func (s *StoreSource) Load() (*scene.Scene, error) {
	return s.store.Load(s.key)
}

// New resolves a scene argument: "store:<key>" or a file path. The store is opened
// lazily through openStore, only when the argument needs it.
func New(arg string, openStore func() (*store.Store, error)) (Source, error) {
	if key, ok := strings.CutPrefix(arg, StorePrefix); ok {
		if openStore == nil {
			return nil, fmt.Errorf("%s: no store configured", arg)
		}
		st, err := openStore()
		if err != nil {
			return nil, err
		}
		return NewStoreSource(st, key), nil
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, err
	}
	return NewFileSource(arg), nil
}

// Expand resolves every argument, replacing a directory by the scene files it holds.
func Expand(args []string, openStore func() (*store.Store, error)) ([]Source, error) {
	var out []Source
	for _, arg := range args {
		if !strings.HasPrefix(arg, StorePrefix) {
			if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
				paths, err := scene.ListScenes(arg)
				if err != nil {
					return nil, err
				}
				for _, p := range paths {
					out = append(out, NewFileSource(p))
				}
				continue
			}
		}
		src, err := New(arg, openStore)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// BaseName is a file-system friendly name for a source, used for output files.
func BaseName(src Source) string {
	name := src.Name()
	if key, ok := strings.CutPrefix(name, StorePrefix); ok {
		return key
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
