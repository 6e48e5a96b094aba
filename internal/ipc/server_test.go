package ipc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/eventloop"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	core    *core.Context
	loop    *eventloop.Loop
	client  *Client
	handles []*platformtest.Output
	spawned []string
}

// startServer builds a context with two outputs and one focused view on the
// first, then serves it from a running event loop.
func startServer(t *testing.T) *harness {
	t.Helper()
	h := &harness{loop: eventloop.New(logging.Discard())}
	h.core = core.New(core.Options{
		Config:    config.DefaultConfig(),
		Seat:      &platformtest.Seat{},
		Scheduler: h.loop,
		Logger:    logging.Discard(),
		Spawn: func(cmd string) error {
			h.spawned = append(h.spawned, cmd)
			return nil
		},
	})
	for i, x := range []int{0, 1000} {
		out := platformtest.NewOutput(uint32(i+1), 1000, 800)
		out.X = x
		out.Gamma = 2
		h.handles = append(h.handles, out)
		h.core.AddOutput(out)
	}
	v, err := h.core.AddView(platformtest.NewSurface(nil, 42), platform.Rect{Width: 1000, Height: 30})
	require.NoError(t, err)
	h.core.FocusView(v, nil)

	srv, err := NewServer(ServerOptions{
		SocketPath: filepath.Join(t.TempDir(), "s.sock"),
		Core:       h.core,
		Loop:       h.loop,
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)
	require.NoError(t, srv.Start())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.loop.Run(ctx, eventloop.Pinger{})
	}()
	t.Cleanup(func() {
		srv.Stop()
		cancel()
		<-done
	})

	h.client = NewClientAt(srv.SocketPath())
	return h
}

// onLoop runs fn on the event loop so assertions never race the server.
func (h *harness) onLoop(t *testing.T, fn func()) {
	t.Helper()
	require.NoError(t, h.loop.Invoke(context.Background(), func() error {
		fn()
		return nil
	}))
}

func TestServer_GetStatus(t *testing.T) {
	h := startServer(t)

	st, err := h.client.GetStatus()
	require.NoError(t, err)
	assert.True(t, st.DaemonRunning)
	assert.Equal(t, uint32(1), st.ActiveOutput)
	assert.Equal(t, 1, st.Views)
	require.Len(t, st.Outputs, 2)
	assert.Equal(t, "FAKE-1", st.Outputs[0].Name)
	assert.Equal(t, uint32(42), st.Outputs[0].ActiveView)
	assert.NoError(t, h.client.Ping())
}

func TestServer_GetOutputs(t *testing.T) {
	h := startServer(t)

	data, err := h.client.GetOutputs()
	require.NoError(t, err)
	require.Len(t, data.Outputs, 2)
	assert.Equal(t, platform.Rect{X: 1000, Width: 1000, Height: 800}, data.Outputs[1].Geometry)
}

func TestServer_PanelAndWorkarea(t *testing.T) {
	h := startServer(t)

	require.NoError(t, h.client.AddPanel(1, 42))
	require.NoError(t, h.client.ConfigurePanel(1, 42, 0, 0))
	require.NoError(t, h.client.ReserveWorkarea(1, "top", 0, 30))

	data, err := h.client.GetOutputs()
	require.NoError(t, err)
	assert.Equal(t, platform.Rect{Y: 30, Width: 1000, Height: 770}, data.Outputs[0].Workarea)

	err = h.client.ReserveWorkarea(1, "middle", 0, 30)
	assert.ErrorContains(t, err, `unknown side "middle"`)
}

func TestServer_ShellErrors(t *testing.T) {
	h := startServer(t)

	err := h.client.AddBackground(7, 42, 0, 0)
	assert.ErrorContains(t, err, core.ErrInvalidTarget.Error())

	err = h.client.SetColorGamma(1, []uint16{1}, []uint16{1}, []uint16{1})
	assert.ErrorContains(t, err, core.ErrGammaSize.Error())

	require.NoError(t, h.client.SetColorGamma(2, []uint16{1, 2}, []uint16{3, 4}, []uint16{5, 6}))
	h.onLoop(t, func() {
		assert.Equal(t, []uint16{3, 4}, h.handles[1].LastGamma[1])
	})
}

func TestServer_FocusOutputAndRun(t *testing.T) {
	h := startServer(t)

	require.NoError(t, h.client.FocusOutput(2))
	st, err := h.client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), st.ActiveOutput)

	assert.Error(t, h.client.FocusOutput(9))

	require.NoError(t, h.client.Run("xterm"))
	assert.Error(t, h.client.Run(""))
	h.onLoop(t, func() {
		assert.Equal(t, []string{"xterm"}, h.spawned)
	})
}

func TestServer_RejectsBadRequests(t *testing.T) {
	h := startServer(t)

	_, err := h.client.sendRequest(&Request{Command: "NOPE"})
	assert.ErrorContains(t, err, "Unknown command: NOPE")

	_, err = h.client.sendRequest(&Request{Command: CommandAddPanel})
	assert.ErrorContains(t, err, "ADD_PANEL requires a payload")

	_, err = h.client.sendRequest(&Request{Command: CommandRun, Payload: []byte(`{"command": 5}`)})
	assert.ErrorContains(t, err, "Invalid RUN payload")
}

func TestServer_DispatchAfterLoopStopped(t *testing.T) {
	loop := eventloop.New(logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = loop.Run(ctx, eventloop.Pinger{})

	srv := &Server{loop: loop, logger: logging.Discard()}
	resp := srv.Dispatch(context.Background(), &Request{Command: CommandGetStatus})
	assert.Equal(t, "ERROR", resp.Status)
	assert.Contains(t, resp.Error, eventloop.ErrStopped.Error())
}
