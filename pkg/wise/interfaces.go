package wise

import (
	"context"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
)

type EventListener interface {
	ReadEvent() (Event, error)
}

// FrameSetter applies frames through the accessibility bridge. Failures are
// reported with ErrStaleWindowHandle, ErrPermissionDenied or ErrTimeout.
type FrameSetter interface {
	SetFrame(ctx context.Context, handle registry.WindowHandle, frame geometry.Rect) error
}

// WindowLister reports the windows that were open before the event stream
// was joined.
type WindowLister interface {
	Windows(ctx context.Context) ([]WindowCreated, error)
}

type ScreenSource interface {
	ScreenBounds(ctx context.Context) (geometry.Rect, error)
}

// DirectiveStore remembers the last directive assigned per application.
type DirectiveStore interface {
	LastDirective(bundleID string) (geometry.Directive, bool, error)
	SetLastDirective(bundleID string, directive geometry.Directive) error
}

type StatusReporter interface {
	ReportPermissionDenied(handle registry.WindowHandle, err error)
}
