package effects

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

var ErrUnknownEasing = errors.New("unknown easing")

var curves = map[string]ease.TweenFunc{
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// NewEasing returns the easing registered under name. An empty name means linear.
func NewEasing(name string) (Easing, error) {
	switch name {
	case "linear", "":
		return LinearEasing{}, nil
	}
	fn, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEasing, name)
	}
	return NewTweenEasing(name, fn), nil
}

// Names lists every registered easing, linear first.
func Names() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{"linear"}, names...)
}
