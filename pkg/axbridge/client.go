package axbridge

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"codeberg.org/miketth/wise/pkg/wise"
)

// Client reads the bridge event stream.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func Connect(ctx context.Context, dir string) (*Client, error) {
	conn, err := connect(ctx, dir, Events, 0)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from bridge socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

// ReadEvent returns nil without error for events wise does not care about.
func (c *Client) ReadEvent() (wise.Event, error) {
	line, err := c.ReadLine()
	if err != nil {
		return nil, err
	}

	return ParseEvent(line)
}
