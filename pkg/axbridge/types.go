package axbridge

import (
	"fmt"
	"math"
	"strings"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
	"codeberg.org/miketth/wise/pkg/wise"
)

type screen struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s screen) ToRect() geometry.Rect {
	return geometry.Rect{
		X:      int(math.Round(s.X)),
		Y:      int(math.Round(s.Y)),
		Width:  int(math.Max(math.Round(s.Width), 0)),
		Height: int(math.Max(math.Round(s.Height), 0)),
	}
}

type window struct {
	Handle   string `json:"handle"`
	BundleID string `json:"bundle_id"`
}

func (w window) ToEvent() (wise.WindowCreated, error) {
	handle, bundleID := strings.TrimSpace(w.Handle), strings.TrimSpace(w.BundleID)
	if handle == "" || bundleID == "" {
		return wise.WindowCreated{}, fmt.Errorf("window %q of %q: %w", w.Handle, w.BundleID, wise.ErrMalformedEvent)
	}

	return wise.WindowCreated{Handle: registry.WindowHandle(handle), BundleID: bundleID}, nil
}
