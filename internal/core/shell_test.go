package core

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_InvalidTarget(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	_, err := f.ctx.AddView(platformtest.NewSurface(nil, 3), platform.Rect{})
	require.NoError(t, err)
	sh := f.ctx.Shell()

	assert.ErrorIs(t, sh.AddBackground(9, 3, 0, 0), ErrInvalidTarget)
	assert.ErrorIs(t, sh.AddBackground(1, 99, 0, 0), ErrInvalidTarget)
	assert.ErrorIs(t, sh.AddPanel(1, 99), ErrInvalidTarget)
	assert.ErrorIs(t, sh.ConfigurePanel(2, 3, 0, 0), ErrInvalidTarget)
	assert.ErrorIs(t, sh.ReserveWorkarea(5, platform.PanelTop, 0, 30), ErrInvalidTarget)
	assert.ErrorIs(t, sh.SetColorGamma(5, nil, nil, nil), ErrInvalidTarget)
}

func TestShell_BackgroundUsesOutputLocalCoordinates(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	b, h := f.addOutput(2, 1000)
	f.ctx.FocusOutput(b)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 3), platform.Rect{X: 1000, Width: 1000, Height: 800})
	require.NoError(t, err)
	f.ctx.FocusView(v, nil)
	h.Journal.Reset()

	require.NoError(t, f.ctx.Shell().AddBackground(2, 3, 0, 0))

	assert.Same(t, v, b.Workspace().Background())
	assert.Equal(t, 1000, v.Geometry.X)
	assert.Nil(t, b.ActiveView(), "background never stays activated")
	assert.Empty(t, b.WorkspaceViews())
	assert.Contains(t, h.Journal.Calls(), "damage")
}

func TestShell_BackgroundAdoptsSurfaceFromOtherOutput(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	b, _ := f.addOutput(2, 1000)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 3), platform.Rect{Width: 10, Height: 10})
	require.NoError(t, err)

	require.NoError(t, f.ctx.Shell().AddBackground(2, 3, 10, 20))

	assert.Equal(t, uint32(2), v.Output.ID())
	assert.Empty(t, a.WorkspaceViews())
	assert.Same(t, v, b.Workspace().Background())
	assert.Equal(t, platform.Rect{X: 1010, Y: 20, Width: 10, Height: 10}, v.Geometry)
}

func TestShell_PanelLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := f.addOutput(1, 0)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 4), platform.Rect{Width: 1000, Height: 30})
	require.NoError(t, err)
	sh := f.ctx.Shell()

	require.NoError(t, sh.AddPanel(1, 4))
	require.NoError(t, sh.ConfigurePanel(1, 4, 0, 770))
	require.NoError(t, sh.ReserveWorkarea(1, platform.PanelBottom, 0, 30))

	assert.Equal(t, 770, v.Geometry.Y)
	assert.Equal(t, platform.Rect{Width: 1000, Height: 770}, a.Workarea())

	f.ctx.DestroyView(v)
	assert.Nil(t, f.ctx.FindView(4))
}

func TestShell_ConfigurePanelIgnoresNonPanels(t *testing.T) {
	f := newFixture(t, nil)
	f.addOutput(1, 0)
	v, err := f.ctx.AddView(platformtest.NewSurface(nil, 4), platform.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	require.NoError(t, err)

	require.NoError(t, f.ctx.Shell().ConfigurePanel(1, 4, 100, 100))
	assert.Equal(t, 5, v.Geometry.X)
}

func TestShell_SetColorGamma(t *testing.T) {
	f := newFixture(t, nil)
	_, h := f.addOutput(1, 0)
	h.Gamma = 4
	sh := f.ctx.Shell()
	ramp := []uint16{0, 100, 200, 300}

	require.NoError(t, sh.SetColorGamma(1, ramp, ramp, ramp))
	assert.Equal(t, ramp, h.LastGamma[0])

	h.Journal.Reset()
	assert.ErrorIs(t, sh.SetColorGamma(1, ramp, ramp[:3], ramp), ErrGammaSize)
	h.Gamma = 0
	assert.ErrorIs(t, sh.SetColorGamma(1, nil, nil, nil), ErrGammaSize)
	assert.Empty(t, h.Journal.Calls())
}
