package ipc

import (
	"encoding/json"
	"testing"

	"github.com/1broseidon/tilewm/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"ADD_PANEL","payload":{"output":1,"surface":9}}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, CommandAddPanel, req.Command)

	var p SurfacePayload
	require.NoError(t, json.Unmarshal(req.Payload, &p))
	assert.Equal(t, SurfacePayload{Output: 1, Surface: 9}, p)

	_, err = ParseRequest([]byte("not json"))
	assert.ErrorContains(t, err, "failed to parse request")
}

func TestNewRequest_OmitsNilPayload(t *testing.T) {
	req, err := NewRequest(CommandGetStatus, nil)
	require.NoError(t, err)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"GET_STATUS"}`, string(data))

	req, err = NewRequest(CommandReserveWorkarea, WorkareaPayload{Output: 2, Side: "left", Width: 40})
	require.NoError(t, err)
	assert.JSONEq(t, `{"output":2,"side":"left","width":40}`, string(req.Payload))
}

func TestStatusData_FlattensCoreStatus(t *testing.T) {
	resp, err := NewOKResponse(StatusData{
		Status:        core.Status{ActiveOutput: 3, Views: 1, Outputs: []core.OutputStatus{}},
		DaemonRunning: true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"active_output":3,"views":1,"outputs":[],"uptime_seconds":0,"daemon_running":true}`, string(resp.Data))

	bad := NewErrorResponse("boom")
	data, err := bad.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ERROR","error":"boom"}`, string(data))
}
