package core

import (
	"errors"
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/platform/platformtest"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/plugin/builtin"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx     *Context
	seat    *platformtest.Seat
	keys    *platformtest.KeyBinder
	sched   *platformtest.Scheduler
	spawned []string
	quits   int
}

func newFixture(t *testing.T, builtins []plugin.Factory) *fixture {
	t.Helper()
	f := &fixture{
		seat:  &platformtest.Seat{Journal: &platformtest.Journal{}},
		keys:  &platformtest.KeyBinder{},
		sched: &platformtest.Scheduler{},
	}
	f.ctx = New(Options{
		Config:    config.DefaultConfig(),
		Seat:      f.seat,
		Scheduler: f.sched,
		Binder:    f.keys,
		Buttons:   f.keys,
		Builtins:  builtins,
		Logger:    logging.Discard(),
		Quit:      func() { f.quits++ },
		Spawn: func(command string) error {
			f.spawned = append(f.spawned, command)
			return nil
		},
	})
	t.Cleanup(f.ctx.Close)
	return f
}

func (f *fixture) addOutput(id uint32, x int) (*output.Output, *platformtest.Output) {
	h := platformtest.NewOutput(id, 1000, 800)
	h.X = x
	return f.ctx.AddOutput(h), h
}

func TestAddOutput_FirstBecomesActive(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)

	assert.Same(t, a, f.ctx.ActiveOutput())
	assert.True(t, f.ctx.IsActiveOutput(a))
	assert.False(t, f.ctx.IsActiveOutput(b))
	assert.True(t, a.IsActive())
	assert.False(t, b.IsActive())
	assert.Same(t, b, f.ctx.Output(2))
	assert.Nil(t, f.ctx.Output(9))
	assert.Len(t, f.ctx.Outputs(), 2)
}

func TestNextOutput_Wraps(t *testing.T) {
	f := newFixture(t, nil)
	assert.Nil(t, f.ctx.NextOutput())

	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)
	assert.Same(t, b, f.ctx.NextOutput())

	f.ctx.FocusOutput(b)
	assert.Same(t, a, f.ctx.NextOutput())

	var seen []uint32
	f.ctx.ForEachOutput(func(o *output.Output) { seen = append(seen, o.ID()) })
	assert.Equal(t, []uint32{1, 2}, seen)
}

func TestFocusOutput_EmitsAndFocusesTopView(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)

	f.ctx.FocusOutput(b)
	s := platformtest.NewSurface(nil, 5)
	v, err := f.ctx.AddView(s, platform.Rect{X: 1100, Y: 10, Width: 100, Height: 100})
	require.NoError(t, err)
	f.ctx.FocusOutput(a)

	var emitted []any
	b.Bus().Subscribe(signal.FocusOutput, func(p any) { emitted = append(emitted, p) })
	f.ctx.FocusOutput(b)

	require.Len(t, emitted, 1)
	assert.Same(t, b, emitted[0])
	assert.Same(t, v, b.ActiveView())
	assert.Equal(t, uint32(5), f.seat.Focus)
	assert.True(t, s.Activated)

	f.ctx.FocusOutput(b)
	assert.Len(t, emitted, 1, "refocusing the active output is a no-op")
}

func TestFocusOutput_WarpsPointerOntoOutput(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)

	f.ctx.FocusOutput(b)
	assert.Equal(t, platform.Point{X: 1500, Y: 400}, f.seat.Position)
}

func TestAddView_RequiresOutput(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.ctx.AddView(platformtest.NewSurface(nil, 1), platform.Rect{})
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestAddView_RegistersAndAttachesToActiveOutput(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)

	var attached int
	a.Bus().Subscribe(signal.AttachView, func(any) { attached++ })

	s := platformtest.NewSurface(nil, 3)
	v, err := f.ctx.AddView(s, platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Same(t, v, f.ctx.FindView(3))
	assert.Equal(t, uint32(1), v.Output.ID())
	assert.Equal(t, 1, attached)

	again, err := f.ctx.AddView(s, platform.Rect{})
	require.NoError(t, err)
	assert.Same(t, v, again)
	assert.Equal(t, 1, attached)
}

func TestDestroyView_ErasesFromTableAndOutput(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 3), platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)

	var destroyed int
	a.Bus().Subscribe(signal.DestroyView, func(any) { destroyed++ })

	f.ctx.DestroyView(v)
	assert.True(t, v.Destroyed)
	assert.False(t, v.Mapped)
	assert.Nil(t, f.ctx.FindView(3))
	assert.Empty(t, a.WorkspaceViews())
	assert.Equal(t, 1, destroyed)

	assert.NotPanics(t, func() { f.ctx.DestroyView(nil) })
}

func TestMoveViewToOutput_KeepsRelativePosition(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)
	s := platformtest.NewSurface(nil, 4)
	v, err := f.ctx.AddView(s, platform.Rect{X: 20, Y: 30, Width: 100, Height: 50})
	require.NoError(t, err)

	f.ctx.MoveViewToOutput(v, a, b)

	assert.Equal(t, platform.Rect{X: 1020, Y: 30, Width: 100, Height: 50}, v.Geometry)
	assert.Equal(t, platform.Rect{X: 1020, Y: 30, Width: 100, Height: 50}, s.Geometry)
	assert.Equal(t, uint32(2), v.Output.ID())
	assert.Empty(t, a.WorkspaceViews())
	assert.Equal(t, []uint32{4}, ids(b))
	assert.Same(t, v, b.ActiveView())
}

func TestFocusView_SwitchesActiveOutput(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 4), platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)
	f.ctx.MoveViewToOutput(v, a, b)
	f.ctx.FocusOutput(a)

	f.ctx.FocusView(v, nil)
	assert.Same(t, b, f.ctx.ActiveOutput())
	assert.Same(t, v, b.ActiveView())
	assert.Equal(t, uint32(4), f.seat.Focus)
}

func TestRemoveOutput_MigratesViews(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 7), platform.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	require.NoError(t, err)

	f.ctx.RemoveOutput(a)

	assert.Same(t, b, f.ctx.ActiveOutput())
	assert.Len(t, f.ctx.Outputs(), 1)
	assert.Equal(t, uint32(2), v.Output.ID())
	assert.Equal(t, 1005, v.Geometry.X)
	assert.Same(t, v, f.ctx.FindView(7))

	f.ctx.RemoveOutput(b)
	assert.Nil(t, f.ctx.ActiveOutput())
	assert.Nil(t, v.Output)
	assert.Same(t, v, f.ctx.FindView(7), "views outlive their last output")

	assert.NotPanics(t, func() { f.ctx.RemoveOutput(b) })
}

func TestCloseView_AsksClient(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	s := platformtest.NewSurface(nil, 2)
	v, err := f.ctx.AddView(s, platform.Rect{})
	require.NoError(t, err)

	require.NoError(t, f.ctx.CloseView(v))
	assert.True(t, s.Closed)
	assert.NoError(t, f.ctx.CloseView(nil))
}

func TestRun_UsesSpawner(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.ctx.Run("xterm -e top"))
	assert.Equal(t, []string{"xterm -e top"}, f.spawned)

	boom := errors.New("boom")
	ctx := New(Options{Logger: logging.Discard(), Spawn: func(string) error { return boom }})
	err := ctx.Run("nope")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestStatus_Snapshot(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	f.addOutput(2, 1000)
	_, err := f.ctx.AddView(platformtest.NewSurface(nil, 1), platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)

	st := f.ctx.Status()
	assert.Equal(t, uint32(1), st.ActiveOutput)
	assert.Equal(t, 1, st.Views)
	require.Len(t, st.Outputs, 2)
	assert.True(t, st.Outputs[0].Active)
	assert.Equal(t, 1, st.Outputs[0].Views)
	assert.Equal(t, "normal", st.Outputs[0].Transform)
	assert.Equal(t, platform.Rect{X: 1000, Width: 1000, Height: 800}, st.Outputs[1].Geometry)
	assert.Equal(t, 0, st.Outputs[1].Views)
}

func TestBuiltins_FocusNewViewsAndQuit(t *testing.T) {
	f := newFixture(t, builtin.Factories())
	a, _ := f.addOutput(1, 0)
	assert.Equal(t, []string{"focus", "close", "exit", "tile", "rotate", "vswitch"}, a.Plugins().Names())

	s := platformtest.NewSurface(nil, 9)
	v, err := f.ctx.AddView(s, platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Same(t, v, a.ActiveView())
	assert.Equal(t, uint32(9), f.seat.Focus)

	f.keys.Press("Mod4-q")
	assert.True(t, s.Closed)

	f.keys.Press("Control-Mod1-BackSpace")
	assert.Equal(t, 1, f.quits)
}

func ids(o *output.Output) []uint32 {
	var out []uint32
	for _, v := range o.WorkspaceViews() {
		out = append(out, v.ID())
	}
	return out
}
