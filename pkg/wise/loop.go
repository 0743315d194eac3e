package wise

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedEvent marks a bridge line that could not be decoded. The line
// is skipped and reading continues.
var ErrMalformedEvent = errors.New("malformed event")

// Run is the control loop. It handles one event at a time until ctx is done
// or events is closed; a failing event never stops it.
func (m *Manager) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			m.log.Debugw("handling event", "event", ev)
			err := m.Handle(ctx, ev)
			switch {
			case errors.Is(err, ErrInvalidDirectiveTarget):
				m.log.Infow("ignoring keybind", "event", ev, "error", err)
			case err != nil:
				m.log.Warnw("could not handle event", "event", ev, "error", err)
			}
		}
	}
}

// Forward reads events from the bridge and queues them for Run.
func (m *Manager) Forward(ctx context.Context, listener EventListener, out chan<- Event) error {
	for {
		resultCh := make(chan Event, 1)
		errCh := make(chan error, 1)
		go func() {
			ev, err := listener.ReadEvent()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- ev
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-resultCh:
			if ev == nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err := <-errCh:
			if errors.Is(err, ErrMalformedEvent) {
				m.log.Warnw("skipping bridge event", "error", err)
				continue
			}
			return fmt.Errorf("read event: %w", err)
		}
	}
}

// Seed queues a WindowCreated for every window that already exists. Run it
// before Forward so later close events are ordered after the creations.
func Seed(ctx context.Context, lister WindowLister, out chan<- Event) error {
	windows, err := lister.Windows(ctx)
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}

	for _, w := range windows {
		select {
		case out <- w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// PollEvery queues a Poll every interval so windows the bridge forgot to
// report on still get reconciled.
func PollEvery(ctx context.Context, interval time.Duration, out chan<- Event) error {
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case out <- Poll{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
