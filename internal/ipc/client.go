package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/tilewm/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the daemon managing $DISPLAY.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath("")
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// send builds and sends a request whose response carries no data.
func (c *Client) send(cmd CommandType, payload interface{}) error {
	req, err := NewRequest(cmd, payload)
	if err != nil {
		return err
	}
	_, err = c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetOutputs retrieves output information
func (c *Client) GetOutputs() (*OutputsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetOutputs})
	if err != nil {
		return nil, err
	}

	var outputs OutputsData
	if err := json.Unmarshal(resp.Data, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse outputs data: %w", err)
	}

	return &outputs, nil
}

// AddBackground makes a surface the background of an output.
func (c *Client) AddBackground(output, surface uint32, x, y int) error {
	return c.send(CommandAddBackground, SurfacePayload{Output: output, Surface: surface, X: x, Y: y})
}

func (c *Client) AddPanel(output, surface uint32) error {
	return c.send(CommandAddPanel, SurfacePayload{Output: output, Surface: surface})
}

func (c *Client) ConfigurePanel(output, surface uint32, x, y int) error {
	return c.send(CommandConfigurePanel, SurfacePayload{Output: output, Surface: surface, X: x, Y: y})
}

// ReserveWorkarea keeps an edge of an output free. side is top, bottom,
// left or right.
func (c *Client) ReserveWorkarea(output uint32, side string, width, height int) error {
	return c.send(CommandReserveWorkarea, WorkareaPayload{Output: output, Side: side, Width: width, Height: height})
}

func (c *Client) SetColorGamma(output uint32, r, g, b []uint16) error {
	return c.send(CommandSetColorGamma, GammaPayload{Output: output, Red: r, Green: g, Blue: b})
}

func (c *Client) FocusOutput(output uint32) error {
	return c.send(CommandFocusOutput, OutputPayload{Output: output})
}

// Run starts a command from the daemon's environment.
func (c *Client) Run(command string) error {
	return c.send(CommandRun, RunPayload{Command: command})
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
