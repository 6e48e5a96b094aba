// Package tiling computes tiled geometries for the views of a workspace.
package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/tilewm/internal/platform"
)

type Mode string

const (
	ModeGrid        Mode = "grid"
	ModeVertical    Mode = "vertical"
	ModeHorizontal  Mode = "horizontal"
	ModeMasterStack Mode = "master-stack"
)

// ParseMode maps a config value to a mode, defaulting to grid.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeGrid:
		return ModeGrid, nil
	case ModeVertical, ModeHorizontal, ModeMasterStack:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unsupported layout mode: %q", s)
}

// Layout describes how a workarea is split between views.
type Layout struct {
	Mode Mode
	Gap  int
	// MasterPercent is the width share of the first view in master-stack mode.
	MasterPercent int
	// FlexibleLastRow stretches a partial last grid row across the width.
	FlexibleLastRow bool
}

// CalculateGrid determines the grid dimensions for n views.
func CalculateGrid(n int) (rows, cols int) {
	if n == 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

// Positions computes one rect per view inside area.
func (l Layout) Positions(n int, area platform.Rect) ([]platform.Rect, error) {
	if n == 0 {
		return nil, nil
	}

	var rows, cols int
	flexible := l.FlexibleLastRow
	switch l.Mode {
	case ModeGrid, "":
		rows, cols = CalculateGrid(n)
	case ModeVertical:
		rows, cols = n, 1
		flexible = false
	case ModeHorizontal:
		rows, cols = 1, n
		flexible = false
	case ModeMasterStack:
		return l.masterStack(n, area)
	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", l.Mode)
	}

	gap := l.Gap
	slotWidth := (area.Width - (cols+1)*gap) / cols
	slotHeight := (area.Height - (rows+1)*gap) / rows
	if slotWidth <= 0 || slotHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d",
			area.Width, area.Height, rows, cols, gap,
		)
	}

	lastRow := rows - 1
	inLastRow := n - lastRow*cols
	lastRowWidth := slotWidth
	if flexible && inLastRow < cols {
		lastRowWidth = (area.Width - (inLastRow+1)*gap) / inLastRow
	}

	positions := make([]platform.Rect, n)
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		width := slotWidth
		if row == lastRow && flexible && inLastRow < cols {
			width = lastRowWidth
		}
		positions[i] = platform.Rect{
			X:      area.X + gap + col*(width+gap),
			Y:      area.Y + gap + row*(slotHeight+gap),
			Width:  width,
			Height: slotHeight,
		}
	}
	return positions, nil
}

func (l Layout) masterStack(n int, area platform.Rect) ([]platform.Rect, error) {
	gap := l.Gap
	percent := l.MasterPercent
	if percent <= 0 || percent >= 100 {
		percent = 50
	}
	height := area.Height - 2*gap
	if n == 1 {
		return []platform.Rect{{X: area.X + gap, Y: area.Y + gap, Width: area.Width - 2*gap, Height: height}}, nil
	}

	masterWidth := area.Width*percent/100 - gap
	stackX := area.X + masterWidth + 2*gap
	stackWidth := area.Width - masterWidth - 3*gap
	stackCount := n - 1
	cellHeight := (height - (stackCount-1)*gap) / stackCount
	if masterWidth <= 0 || stackWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for master-stack layout: area=%dx%d views=%d gap=%d",
			area.Width, area.Height, n, gap,
		)
	}

	positions := make([]platform.Rect, n)
	positions[0] = platform.Rect{X: area.X + gap, Y: area.Y + gap, Width: masterWidth, Height: height}
	for i := 0; i < stackCount; i++ {
		positions[i+1] = platform.Rect{
			X:      stackX,
			Y:      area.Y + gap + i*(cellHeight+gap),
			Width:  stackWidth,
			Height: cellHeight,
		}
	}
	return positions, nil
}
