package grab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate_ConflictScenario(t *testing.T) {
	arb := NewArbiter(nil)
	a := NewInterface("a", arb)
	b := NewInterface("b", arb)

	require.True(t, arb.Activate(a))
	require.False(t, arb.Activate(b))
	assert.Equal(t, []string{"a"}, arb.Active())

	require.True(t, arb.Deactivate(a))
	require.True(t, arb.Activate(b))
	assert.Equal(t, []string{"b"}, arb.Active())
}

func TestActivate_Idempotent(t *testing.T) {
	arb := NewArbiter(nil)
	a := NewInterface("a", arb)

	require.True(t, arb.Activate(a))
	before := arb.Active()
	require.True(t, arb.Activate(a))
	assert.Equal(t, before, arb.Active())
}

func TestActivate_RejectsNilAndInactiveOutput(t *testing.T) {
	active := false
	arb := NewArbiter(func() bool { return active })
	a := NewInterface("a", arb)

	assert.False(t, arb.Activate(nil))
	assert.False(t, arb.Activate(a))

	active = true
	assert.True(t, arb.Activate(a))
}

func TestActivate_RequiresBothDirections(t *testing.T) {
	tests := []struct {
		name       string
		aCompat    []string
		aAll       bool
		bCompat    []string
		bAll       bool
		wantSecond bool
	}{
		{"neither", nil, false, nil, false, false},
		{"only a lists b", []string{"b"}, false, nil, false, false},
		{"only b lists a", nil, false, []string{"a"}, false, false},
		{"mutual lists", []string{"b"}, false, []string{"a"}, false, true},
		{"a compat all, b lists a", nil, true, []string{"a"}, false, true},
		{"a compat all only", nil, true, nil, false, false},
		{"both compat all", nil, true, nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arb := NewArbiter(nil)
			a := NewInterface("a", arb)
			a.AddCompat(tt.aCompat...)
			a.CompatAll = tt.aAll
			b := NewInterface("b", arb)
			b.AddCompat(tt.bCompat...)
			b.CompatAll = tt.bAll

			require.True(t, arb.Activate(a))
			assert.Equal(t, tt.wantSecond, arb.Activate(b))
		})
	}
}

func TestActivate_AllOrNothingAcrossActiveSet(t *testing.T) {
	arb := NewArbiter(nil)
	a := NewInterface("a", arb)
	a.CompatAll = true
	b := NewInterface("b", arb)
	b.AddCompat("c")
	b.CompatAll = false
	c := NewInterface("c", arb)
	c.AddCompat("a")

	require.True(t, arb.Activate(a))
	b.AddCompat("a")
	require.True(t, arb.Activate(b))

	// c is compatible with a but not with b (b lists c, c does not list b).
	require.False(t, arb.Activate(c))
	assert.Equal(t, []string{"a", "b"}, arb.Active())
}

func TestActiveSet_PairwiseCompatibleProperty(t *testing.T) {
	arb := NewArbiter(nil)
	var all []*Interface
	for i := 0; i < 6; i++ {
		all = append(all, NewInterface(fmt.Sprintf("p%d", i), arb))
	}
	all[0].CompatAll = true
	all[1].AddCompat("p0", "p2", "p3")
	all[2].AddCompat("p0", "p1")
	all[3].AddCompat("p1")
	all[4].CompatAll = true
	all[5].AddCompat("p4")

	for _, p := range all {
		arb.Activate(p)
	}

	byName := map[string]*Interface{}
	for _, p := range all {
		byName[p.Name] = p
	}
	active := arb.Active()
	require.NotEmpty(t, active)
	for _, an := range active {
		for _, bn := range active {
			if an == bn {
				continue
			}
			x, y := byName[an], byName[bn]
			assert.True(t, x.compatibleWith(y), "%s should accept %s", an, bn)
		}
	}
}

func TestDeactivate_AlwaysUngrabsAndSucceeds(t *testing.T) {
	arb := NewArbiter(nil)
	released := 0
	a := NewInterface("a", arb)
	a.OnUngrab = func() { released++ }

	assert.True(t, arb.Deactivate(a))
	assert.Equal(t, 0, released, "never grabbed, nothing to release")

	require.True(t, arb.Activate(a))
	require.True(t, a.Grab())
	assert.Same(t, a, arb.InputGrab())

	assert.True(t, arb.Deactivate(a))
	assert.Equal(t, 1, released)
	assert.False(t, arb.IsActive("a"))
	assert.Nil(t, arb.InputGrab())
	assert.True(t, arb.Deactivate(nil))
}

func TestGrab_RequiresActivation(t *testing.T) {
	arb := NewArbiter(nil)
	grabbed := 0
	a := NewInterface("a", arb)
	a.OnGrab = func() { grabbed++ }

	assert.False(t, a.Grab())
	require.True(t, arb.Activate(a))
	assert.True(t, a.Grab())
	assert.True(t, a.Grab())
	assert.Equal(t, 1, grabbed)
	assert.True(t, a.Grabbed())
}

func TestIsActive_MatchesByName(t *testing.T) {
	arb := NewArbiter(nil)
	a := NewInterface("expo", arb)
	assert.False(t, arb.IsActive("expo"))
	require.True(t, arb.Activate(a))
	assert.True(t, arb.IsActive("expo"))
	assert.False(t, arb.IsActive("cube"))
}
