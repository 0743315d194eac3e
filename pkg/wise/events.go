package wise

import (
	"fmt"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
)

// Event is anything the control loop consumes: bridge notifications, decoded
// keybinds and poll ticks.
type Event interface {
	fmt.Stringer
	event()
}

type WindowCreated struct {
	Handle   registry.WindowHandle
	BundleID string
}

type WindowClosed struct {
	Handle registry.WindowHandle
}

// WindowGeometryChanged only triggers reconciliation; the reported geometry
// is never trusted.
type WindowGeometryChanged struct {
	Handle registry.WindowHandle
}

type SetLayout struct {
	Target    registry.WindowHandle
	Directive geometry.Directive
}

type ToggleFloat struct {
	Target registry.WindowHandle
}

// Poll reconciles every core window, catching notifications the bridge dropped.
type Poll struct{}

func (WindowCreated) event()         {}
func (WindowClosed) event()          {}
func (WindowGeometryChanged) event() {}
func (SetLayout) event()             {}
func (ToggleFloat) event()           {}
func (Poll) event()                  {}

func (e WindowCreated) String() string {
	return fmt.Sprintf("window created %s (%s)", e.Handle, e.BundleID)
}

func (e WindowClosed) String() string {
	return fmt.Sprintf("window closed %s", e.Handle)
}

func (e WindowGeometryChanged) String() string {
	return fmt.Sprintf("window geometry changed %s", e.Handle)
}

func (e SetLayout) String() string {
	return fmt.Sprintf("set layout %s %s", e.Target, e.Directive)
}

func (e ToggleFloat) String() string {
	return fmt.Sprintf("toggle float %s", e.Target)
}

func (Poll) String() string {
	return "poll"
}
