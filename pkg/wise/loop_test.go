package wise

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedListener struct {
	events []Event
	errs   []error
}

func (l *scriptedListener) ReadEvent() (Event, error) {
	if len(l.events) == 0 {
		return nil, io.EOF
	}
	ev, err := l.events[0], l.errs[0]
	l.events, l.errs = l.events[1:], l.errs[1:]
	return ev, err
}

func TestRunKeepsGoingAfterFailures(t *testing.T) {
	f := newFixture(t, nil)
	f.bridge.On("SetFrame", registry.WindowHandle("w1"), fullFrame).Return(ErrStaleWindowHandle).Once()
	f.bridge.On("SetFrame", registry.WindowHandle("w2"), fullFrame).Return(nil).Once()
	f.bridge.On("SetFrame", registry.WindowHandle("w2"), rightFrame).Return(nil).Once()

	events := make(chan Event, 8)
	events <- WindowCreated{Handle: "w1", BundleID: "com.example.a"}
	events <- SetLayout{Target: "ghost", Directive: geometry.Left}
	events <- WindowCreated{Handle: "w2", BundleID: "bad id!"}
	events <- WindowCreated{Handle: "w2", BundleID: "com.apple.terminal"}
	events <- SetLayout{Target: "w2", Directive: geometry.Right}
	close(events)

	require.NoError(t, f.manager.Run(context.Background(), events))

	_, ok := f.windows.Find("w1")
	assert.False(t, ok)
	assert.Equal(t, geometry.Right, f.state(t, "w2").Directive)
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.manager.Run(ctx, make(chan Event))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForwardSkipsMalformedEvents(t *testing.T) {
	f := newFixture(t, nil)

	listener := &scriptedListener{
		events: []Event{
			WindowCreated{Handle: "w1", BundleID: "com.example.a"},
			nil,
			nil,
			WindowClosed{Handle: "w1"},
		},
		errs: []error{
			nil,
			fmt.Errorf("decode %q: %w", "openwindow>>", ErrMalformedEvent),
			nil,
			nil,
		},
	}

	out := make(chan Event, 8)
	err := f.manager.Forward(context.Background(), listener, out)
	assert.ErrorIs(t, err, io.EOF)

	close(out)
	var got []Event
	for ev := range out {
		got = append(got, ev)
	}
	assert.Equal(t, []Event{
		WindowCreated{Handle: "w1", BundleID: "com.example.a"},
		WindowClosed{Handle: "w1"},
	}, got)
}

func TestForwardStopsOnCancel(t *testing.T) {
	f := newFixture(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.manager.Forward(ctx, blockingListener{}, make(chan Event))
	assert.ErrorIs(t, err, context.Canceled)
}

type blockingListener struct{}

func (blockingListener) ReadEvent() (Event, error) {
	select {}
}

func TestPollEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- PollEvery(ctx, time.Millisecond, out) }()

	select {
	case ev := <-out:
		assert.Equal(t, Poll{}, ev)
	case <-time.After(time.Second):
		t.Fatal("no poll event")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type staticLister struct {
	windows []WindowCreated
	err     error
}

func (l staticLister) Windows(context.Context) ([]WindowCreated, error) {
	return l.windows, l.err
}

func TestSeedManagesExistingWindows(t *testing.T) {
	f := newFixture(t, nil)
	f.bridge.On("SetFrame", registry.WindowHandle("pre"), fullFrame).Return(nil).Twice()

	events := make(chan Event, 8)
	lister := staticLister{windows: []WindowCreated{
		{Handle: "pre", BundleID: "com.example.A"},
		{Handle: "adhoc", BundleID: "com.apple.finder"},
	}}
	require.NoError(t, Seed(context.Background(), lister, events))
	events <- WindowGeometryChanged{Handle: "pre"}
	close(events)

	require.NoError(t, f.manager.Run(context.Background(), events))

	assert.Equal(t, registry.LayoutState{Directive: geometry.FullScreen}, f.state(t, "pre"))
	assert.True(t, f.state(t, "adhoc").Floating)
}

func TestSeedListFailure(t *testing.T) {
	events := make(chan Event, 1)
	err := Seed(context.Background(), staticLister{err: ErrPermissionDenied}, events)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, events)
}

func TestSeedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lister := staticLister{windows: []WindowCreated{{Handle: "pre", BundleID: "com.example.a"}}}
	assert.ErrorIs(t, Seed(ctx, lister, make(chan Event)), context.Canceled)
}
