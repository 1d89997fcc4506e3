package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotPositionResolve(t *testing.T) {
	tests := []struct {
		name string
		pos  SlotPosition
		want PositionKind
	}{
		{"explicit normalized keeps kind", Normalized(3, 3), PositionNormalized},
		{"explicit grid units keeps kind", GridUnits(0.5, 0.5), PositionGridUnits},
		{"small inferred is normalized", Inferred(1, 0.25), PositionNormalized},
		{"large inferred is grid units", Inferred(2, 0), PositionGridUnits},
		{"zero value infers", SlotPosition{X: 0, Y: 0}, PositionNormalized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Resolve())
		})
	}
}

func TestGridConfigPerTeam(t *testing.T) {
	cfg := DefaultGridConfig()
	cfg.LayoutB = Diamond4Layout

	assert.Nil(t, cfg.Layout(TeamA))
	assert.Equal(t, Diamond4Layout, cfg.Layout(TeamB))
	assert.Equal(t, "team-a", cfg.BorderID(TeamA))
	assert.Equal(t, "team-b", cfg.BorderID(TeamB))
}

func TestDropTargets(t *testing.T) {
	slot := SlotTarget(PlayerPointer{Team: TeamB, Index: 2})
	assert.True(t, slot.IsSlot())
	assert.Equal(t, PlayerPointer{Team: TeamB, Index: 2}, slot.Pointer())

	zone := ZoneTarget(TeamA)
	assert.False(t, zone.IsSlot())
	assert.Equal(t, TeamA, zone.Team)
}

func TestNamedLayout(t *testing.T) {
	for name, want := range map[string][]SlotPosition{
		"":            nil,
		LayoutColumns: nil,
		LayoutGrid2x2: Default2x2Layout,
		LayoutDiamond: Diamond4Layout,
	} {
		got, err := NamedLayout(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := NamedLayout("hexagon")
	assert.ErrorContains(t, err, "hexagon")
}
