package axbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"time"

	"codeberg.org/miketth/wise/pkg/geometry"
	"codeberg.org/miketth/wise/pkg/registry"
	"codeberg.org/miketth/wise/pkg/wise"
)

const DefaultTimeout = 500 * time.Millisecond

// errorMapper is checked in order, so a response naming both a permission
// problem and a dead handle is reported as a permission problem.
var errorMapper = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`^ok$`), nil},
	{regexp.MustCompile(`permission denied|not trusted`), wise.ErrPermissionDenied},
	{regexp.MustCompile(`invalid handle|window not found|no such window`), wise.ErrStaleWindowHandle},
	{regexp.MustCompile(`timed out`), wise.ErrTimeout},
}

// Bridge sends requests to the accessibility helper. Every request uses a
// fresh connection and is bounded by the timeout.
type Bridge struct {
	dir     string
	timeout time.Duration
}

func NewBridge(dir string, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{dir: dir, timeout: timeout}
}

func (b *Bridge) SetFrame(ctx context.Context, handle registry.WindowHandle, frame geometry.Rect) error {
	request := fmt.Sprintf("setframe %s %d %d %d %d", handle, frame.X, frame.Y, frame.Width, frame.Height)
	out, err := b.makeRequest(ctx, request, "")
	if err != nil {
		return err
	}

	return mapResponse(string(out))
}

func (b *Bridge) ScreenBounds(ctx context.Context) (geometry.Rect, error) {
	out, err := b.makeRequest(ctx, "screen", "j")
	if err != nil {
		return geometry.Rect{}, err
	}

	if !json.Valid(out) {
		if err := mapResponse(string(out)); err != nil {
			return geometry.Rect{}, fmt.Errorf("screen: %w", err)
		}
		return geometry.Rect{}, fmt.Errorf("unexpected screen response: %q", out)
	}

	var s screen
	if err := json.Unmarshal(out, &s); err != nil {
		return geometry.Rect{}, fmt.Errorf("unmarshal screen: %w, (bridge: %s)", err, out)
	}

	return s.ToRect(), nil
}

// Windows lists the windows that already exist, so they can be managed
// without waiting for an openwindow event.
func (b *Bridge) Windows(ctx context.Context) ([]wise.WindowCreated, error) {
	out, err := b.makeRequest(ctx, "windows", "j")
	if err != nil {
		return nil, err
	}

	if !json.Valid(out) {
		if err := mapResponse(string(out)); err != nil {
			return nil, fmt.Errorf("windows: %w", err)
		}
		return nil, fmt.Errorf("unexpected windows response: %q", out)
	}

	var windows []window
	if err := json.Unmarshal(out, &windows); err != nil {
		return nil, fmt.Errorf("unmarshal windows: %w, (bridge: %s)", err, out)
	}

	created := make([]wise.WindowCreated, 0, len(windows))
	for _, w := range windows {
		ev, err := w.ToEvent()
		if err != nil {
			return nil, err
		}
		created = append(created, ev)
	}

	return created, nil
}

// Trusted reports whether the helper holds accessibility permission.
func (b *Bridge) Trusted(ctx context.Context) (bool, error) {
	out, err := b.makeRequest(ctx, "trusted", "")
	if err != nil {
		return false, err
	}

	switch string(out) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}

	return false, fmt.Errorf("unexpected trusted response: %q", out)
}

func (b *Bridge) makeRequest(ctx context.Context, request string, args string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	conn, err := connect(ctx, b.dir, Requests, b.timeout)
	if err != nil {
		return nil, timeoutOr(err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", args, request)))
	if err != nil {
		return nil, timeoutOr(fmt.Errorf("write to bridge socket: %w", err))
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	var buf bytes.Buffer
	_, err = io.Copy(&buf, conn)
	if err != nil {
		return nil, timeoutOr(fmt.Errorf("read response from bridge socket: %w", err))
	}

	return bytes.TrimSpace(buf.Bytes()), nil
}

func mapResponse(out string) error {
	for _, mapping := range errorMapper {
		if mapping.re.MatchString(out) {
			if mapping.err == nil {
				return nil
			}
			return fmt.Errorf("bridge: %s: %w", out, mapping.err)
		}
	}

	return fmt.Errorf("unknown bridge error: %s", out)
}

func timeoutOr(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", wise.ErrTimeout, err)
	}
	return err
}
