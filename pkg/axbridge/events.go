package axbridge

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
	"codeberg.org/miketth/wise/pkg/wise"
)

// ParseEvent decodes one EVENT>>DATA line.
func ParseEvent(line string) (wise.Event, error) {
	evType, evData, found := strings.Cut(strings.TrimSpace(line), ">>")
	if !found {
		return nil, fmt.Errorf("invalid line %q: %w", line, wise.ErrMalformedEvent)
	}

	fields := strings.Split(evData, ",")
	handle := registry.WindowHandle(strings.TrimSpace(fields[0]))
	if handle == "" && knownEvent(evType) {
		return nil, fmt.Errorf("%s without window handle: %w", evType, wise.ErrMalformedEvent)
	}

	switch evType {
	case "openwindow":
		if len(fields) < 2 || strings.TrimSpace(fields[1]) == "" {
			return nil, fmt.Errorf("openwindow without bundle id %q: %w", evData, wise.ErrMalformedEvent)
		}
		return wise.WindowCreated{Handle: handle, BundleID: strings.TrimSpace(fields[1])}, nil

	case "closewindow":
		return wise.WindowClosed{Handle: handle}, nil

	case "movewindow", "resizewindow":
		return wise.WindowGeometryChanged{Handle: handle}, nil

	case "setlayout":
		if len(fields) < 2 {
			return nil, fmt.Errorf("setlayout without directive %q: %w", evData, wise.ErrMalformedEvent)
		}
		directive, err := geometry.ParseDirective(fields[1])
		if err != nil {
			return nil, fmt.Errorf("setlayout: %w: %w", err, wise.ErrMalformedEvent)
		}
		return wise.SetLayout{Target: handle, Directive: directive}, nil

	case "togglefloat":
		return wise.ToggleFloat{Target: handle}, nil
	}

	return nil, nil
}

func knownEvent(evType string) bool {
	switch evType {
	case "openwindow", "closewindow", "movewindow", "resizewindow", "setlayout", "togglefloat":
		return true
	}
	return false
}
