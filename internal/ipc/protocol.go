package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/tilewm/internal/core"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetOutputs      CommandType = "GET_OUTPUTS"
	CommandAddBackground   CommandType = "ADD_BACKGROUND"
	CommandAddPanel        CommandType = "ADD_PANEL"
	CommandConfigurePanel  CommandType = "CONFIGURE_PANEL"
	CommandReserveWorkarea CommandType = "RESERVE_WORKAREA"
	CommandSetColorGamma   CommandType = "SET_COLOR_GAMMA"
	CommandFocusOutput     CommandType = "FOCUS_OUTPUT"
	CommandRun             CommandType = "RUN"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	core.Status
	UptimeSeconds int64 `json:"uptime_seconds"`
	DaemonRunning bool  `json:"daemon_running"`
}

// OutputsData represents the data returned by GET_OUTPUTS
type OutputsData struct {
	Outputs []core.OutputStatus `json:"outputs"`
}

// SurfacePayload addresses a shell surface on an output. X and Y are only
// read by ADD_BACKGROUND and CONFIGURE_PANEL.
type SurfacePayload struct {
	Output  uint32 `json:"output"`
	Surface uint32 `json:"surface"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
}

type WorkareaPayload struct {
	Output uint32 `json:"output"`
	Side   string `json:"side"` // top, bottom, left or right
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type GammaPayload struct {
	Output uint32   `json:"output"`
	Red    []uint16 `json:"red"`
	Green  []uint16 `json:"green"`
	Blue   []uint16 `json:"blue"`
}

type OutputPayload struct {
	Output uint32 `json:"output"`
}

type RunPayload struct {
	Command string `json:"command"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// NewRequest builds a request, marshaling payload when it is not nil.
func NewRequest(cmd CommandType, payload interface{}) (*Request, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
