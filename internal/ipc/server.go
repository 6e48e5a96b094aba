package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/runtimepath"
)

// Invoker runs fn on the goroutine that owns the compositor state.
type Invoker interface {
	Invoke(ctx context.Context, fn func() error) error
}

// ServerOptions configures a Server.
type ServerOptions struct {
	// SocketPath defaults to the socket of $DISPLAY.
	SocketPath string
	Core       *core.Context
	Loop       Invoker
	Logger     *slog.Logger
	// Timeout bounds how long one request may wait for the event loop.
	Timeout time.Duration
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	core         *core.Context
	loop         Invoker
	logger       *slog.Logger
	timeout      time.Duration
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(opts ServerOptions) (*Server, error) {
	socketPath := opts.SocketPath
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		core:       opts.Core,
		loop:       opts.Loop,
		logger:     logger.With("component", "ipc"),
		timeout:    timeout,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	resp := s.Dispatch(ctx, req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// Dispatch runs req on the event loop and returns its response.
func (s *Server) Dispatch(ctx context.Context, req *Request) *Response {
	var resp *Response
	err := s.loop.Invoke(ctx, func() error {
		resp = s.handleCommand(req)
		return nil
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("%s: %v", req.Command, err))
	}
	return resp
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC command", "command", req.Command)
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetOutputs:
		return s.handleGetOutputs()
	case CommandAddBackground:
		return withPayload(req, func(p SurfacePayload) error {
			return s.core.Shell().AddBackground(p.Output, p.Surface, p.X, p.Y)
		})
	case CommandAddPanel:
		return withPayload(req, func(p SurfacePayload) error {
			return s.core.Shell().AddPanel(p.Output, p.Surface)
		})
	case CommandConfigurePanel:
		return withPayload(req, func(p SurfacePayload) error {
			return s.core.Shell().ConfigurePanel(p.Output, p.Surface, p.X, p.Y)
		})
	case CommandReserveWorkarea:
		return withPayload(req, func(p WorkareaPayload) error {
			side, ok := platform.ParsePanelSide(p.Side)
			if !ok {
				return fmt.Errorf("unknown side %q", p.Side)
			}
			return s.core.Shell().ReserveWorkarea(p.Output, side, p.Width, p.Height)
		})
	case CommandSetColorGamma:
		return withPayload(req, func(p GammaPayload) error {
			return s.core.Shell().SetColorGamma(p.Output, p.Red, p.Green, p.Blue)
		})
	case CommandFocusOutput:
		return withPayload(req, func(p OutputPayload) error {
			o := s.core.Output(p.Output)
			if o == nil {
				return fmt.Errorf("output %d: %w", p.Output, core.ErrInvalidTarget)
			}
			s.core.FocusOutput(o)
			return nil
		})
	case CommandRun:
		return withPayload(req, func(p RunPayload) error {
			if p.Command == "" {
				return errors.New("command is required")
			}
			return s.core.Run(p.Command)
		})
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// withPayload decodes the request payload into P and runs fn.
func withPayload[P any](req *Request, fn func(P) error) *Response {
	var p P
	if len(req.Payload) == 0 {
		return NewErrorResponse(fmt.Sprintf("%s requires a payload", req.Command))
	}
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid %s payload: %v", req.Command, err))
	}
	if err := fn(p); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		Status:        s.core.Status(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, err := NewOKResponse(status)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleGetOutputs returns information about all outputs
func (s *Server) handleGetOutputs() *Response {
	resp, err := NewOKResponse(OutputsData{Outputs: s.core.Status().Outputs})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}
