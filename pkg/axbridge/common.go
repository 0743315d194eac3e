package axbridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

var ErrNotRunning = errors.New("accessibility bridge might not be running")

type socketType int

const (
	Requests socketType = iota
	Events
)

// DefaultDir is where the bridge helper puts its sockets, $WISE_BRIDGE_DIR
// or $XDG_RUNTIME_DIR/wise.
func DefaultDir() (string, error) {
	if dir := os.Getenv("WISE_BRIDGE_DIR"); dir != "" {
		return dir, nil
	}

	if xdg.RuntimeDir == "" {
		return "", fmt.Errorf("XDG_RUNTIME_DIR is not set, %w", ErrNotRunning)
	}

	return filepath.Join(xdg.RuntimeDir, "wise"), nil
}

func socketPath(dir string, sock socketType) (string, error) {
	switch sock {
	case Requests:
		return filepath.Join(dir, "requests.sock"), nil
	case Events:
		return filepath.Join(dir, "events.sock"), nil
	}

	return "", fmt.Errorf("unknown socket type: %d", sock)
}

func connect(ctx context.Context, dir string, sock socketType, timeout time.Duration) (net.Conn, error) {
	path, err := socketPath(dir, sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dial %s: %w", path, ErrNotRunning)
		}
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}
