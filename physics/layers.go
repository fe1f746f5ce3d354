package physics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Collision layers are cp shape filter category bits.
const (
	LayerDefault uint = 1 << iota
	LayerGround
	LayerHookable
	LayerPlayer
	LayerHook
)

var ErrUnknownLayer = errors.New("physics: unknown layer")

var layerNames = map[string]uint{
	"default":  LayerDefault,
	"ground":   LayerGround,
	"hookable": LayerHookable,
	"player":   LayerPlayer,
	"hook":     LayerHook,
}

// LayerMask ORs the named layers together. Names are case-insensitive.
func LayerMask(names ...string) (uint, error) {
	var mask uint
	for _, name := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w %q (known: %s)", ErrUnknownLayer, name, strings.Join(LayerNames(), ", "))
		}
		mask |= bit
	}
	return mask, nil
}

// MustLayer is LayerMask for names baked into code. An unknown name is a
// programming error.
func MustLayer(names ...string) uint {
	mask, err := LayerMask(names...)
	if err != nil {
		panic("physics: layer mask: " + err.Error())
	}
	return mask
}

// LayerNames returns the known layer names in sorted order.
func LayerNames() []string {
	names := make([]string, 0, len(layerNames))
	for name := range layerNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
