package wise

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/miketth/wise/pkg/bundleid"
	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
	"go.uber.org/zap"
)

// Manager owns the layout state of every tracked window and keeps core
// windows at their directed frames. It is not safe for concurrent use: all
// events go through Run on a single goroutine.
type Manager struct {
	core     CoreSet
	windows  *registry.Registry
	frames   FrameSetter
	screens  ScreenSource
	store    DirectiveStore
	reporter StatusReporter
	log      *zap.SugaredLogger
}

func NewManager(
	core CoreSet,
	windows *registry.Registry,
	frames FrameSetter,
	screens ScreenSource,
	store DirectiveStore,
	reporter StatusReporter,
	log *zap.SugaredLogger,
) *Manager {
	return &Manager{
		core:     core,
		windows:  windows,
		frames:   frames,
		screens:  screens,
		store:    store,
		reporter: reporter,
		log:      log,
	}
}

func (m *Manager) Handle(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case WindowCreated:
		entry, created, err := m.WindowCreated(ev.Handle, ev.BundleID)
		if err != nil {
			return fmt.Errorf("register window: %w", err)
		}
		if !created {
			return nil
		}
		return m.reconcile(ctx, entry)

	case WindowClosed:
		m.WindowClosed(ev.Handle)
		return nil

	case WindowGeometryChanged:
		entry, ok := m.windows.Find(ev.Handle)
		if !ok {
			return nil
		}
		return m.reconcile(ctx, entry)

	case SetLayout:
		entry, err := m.AssignDirective(ev.Target, ev.Directive)
		if err != nil {
			return err
		}
		return m.reconcile(ctx, entry)

	case ToggleFloat:
		entry, err := m.ToggleFloating(ev.Target)
		if err != nil {
			return err
		}
		return m.reconcile(ctx, entry)

	case Poll:
		return m.reconcile(ctx, m.windows.AllCore()...)
	}

	return fmt.Errorf("unknown event type %T", ev)
}

// WindowCreated starts tracking a window. Core windows inherit the last
// directive used by their application, non-core windows float.
func (m *Manager) WindowCreated(handle registry.WindowHandle, rawBundleID string) (*registry.Entry, bool, error) {
	id, err := bundleid.Parse(rawBundleID)
	if err != nil {
		return nil, false, fmt.Errorf("window %s: %w", handle, err)
	}

	app := registry.Application{BundleID: id, Core: m.core.Contains(id)}
	entry, created := m.windows.Upsert(handle, app)
	if !created {
		return entry, false, nil
	}

	if !app.Core {
		entry.State.Floating = true
		m.log.Debugw("tracking ad hoc window", "window", handle, "app", id)
		return entry, true, nil
	}

	directive, found, err := m.store.LastDirective(id)
	switch {
	case err != nil:
		m.log.Warnw("could not look up last directive", "app", id, "error", err)
	case found:
		entry.State.Directive = directive
	}

	m.log.Infow("tracking core window", "window", handle, "app", id, "directive", entry.State.Directive, "tracked", m.windows.Len())
	return entry, true, nil
}

func (m *Manager) WindowClosed(handle registry.WindowHandle) {
	if _, ok := m.windows.Find(handle); !ok {
		return
	}
	m.windows.Remove(handle)
	m.log.Debugw("stopped tracking window", "window", handle, "tracked", m.windows.Len())
}

// AssignDirective sets the directive of a window. On core windows it also
// ends floating and becomes the application's remembered directive.
func (m *Manager) AssignDirective(handle registry.WindowHandle, directive geometry.Directive) (*registry.Entry, error) {
	entry, ok := m.windows.Find(handle)
	if !ok {
		return nil, fmt.Errorf("set layout %s on %s: %w", directive, handle, ErrInvalidDirectiveTarget)
	}

	entry.State.Directive = directive
	if !entry.App.Core {
		return entry, nil
	}

	entry.State.Floating = false
	if err := m.store.SetLastDirective(entry.App.BundleID, directive); err != nil {
		m.log.Warnw("could not remember directive", "app", entry.App.BundleID, "error", err)
	}

	return entry, nil
}

// ToggleFloating flips the floating flag of a core window. Non-core windows
// always float, so they are left alone.
func (m *Manager) ToggleFloating(handle registry.WindowHandle) (*registry.Entry, error) {
	entry, ok := m.windows.Find(handle)
	if !ok {
		return nil, fmt.Errorf("toggle float on %s: %w", handle, ErrInvalidDirectiveTarget)
	}

	if entry.App.Core {
		entry.State.Floating = !entry.State.Floating
		m.log.Debugw("toggled floating", "window", handle, "floating", entry.State.Floating)
	}

	return entry, nil
}

// reconcile applies the directed frame to every non-floating entry, at most
// once each. Screen bounds are read once per pass.
func (m *Manager) reconcile(ctx context.Context, entries ...*registry.Entry) error {
	var (
		screen     geometry.Rect
		haveScreen bool
	)

	for _, entry := range entries {
		if entry.EffectivelyFloating() {
			continue
		}

		if !haveScreen {
			var err error
			screen, err = m.screens.ScreenBounds(ctx)
			if err != nil {
				if errors.Is(err, ErrPermissionDenied) {
					m.permissionDenied(entry.Handle, err)
				}
				return fmt.Errorf("read screen bounds: %w", err)
			}
			haveScreen = true
		}

		frame := geometry.ComputeFrame(screen, entry.State.Directive)
		err := m.frames.SetFrame(ctx, entry.Handle, frame)
		m.applied(entry, frame, err)
	}

	return nil
}

func (m *Manager) applied(entry *registry.Entry, frame geometry.Rect, err error) {
	switch {
	case err == nil:
		m.log.Debugw("applied frame", "window", entry.Handle, "frame", frame)

	case errors.Is(err, ErrStaleWindowHandle), errors.Is(err, ErrTimeout):
		m.log.Infow("evicting stale window", "window", entry.Handle, "app", entry.App.BundleID, "error", err)
		m.WindowClosed(entry.Handle)

	case errors.Is(err, ErrPermissionDenied):
		m.permissionDenied(entry.Handle, err)

	default:
		m.log.Warnw("could not apply frame", "window", entry.Handle, "frame", frame, "error", err)
	}
}

func (m *Manager) permissionDenied(handle registry.WindowHandle, err error) {
	m.log.Errorw("accessibility permission denied", "window", handle, "error", err)
	if m.reporter != nil {
		m.reporter.ReportPermissionDenied(handle, err)
	}
}
