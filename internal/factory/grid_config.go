package factory

import (
	"fmt"
	"strconv"

	"github.com/jerrk000/teamify/internal/model"
)

// Environment variables read by GridConfigFromEnv
const (
	EnvGridLayout  = "GRID_LAYOUT"   // layout for both teams
	EnvGridLayoutA = "GRID_LAYOUT_A" // overrides GRID_LAYOUT for team A
	EnvGridLayoutB = "GRID_LAYOUT_B" // overrides GRID_LAYOUT for team B
	EnvGridColumns = "GRID_COLUMNS"
)

// GridConfigFromEnv starts from model.DefaultGridConfig and applies the grid
// layout settings found through getenv
func GridConfigFromEnv(getenv func(string) string) (model.GridConfig, error) {
	cfg := model.DefaultGridConfig()

	shared := getenv(EnvGridLayout)
	var err error
	if cfg.LayoutA, err = teamLayout(getenv(EnvGridLayoutA), shared); err != nil {
		return cfg, fmt.Errorf("%s: %w", EnvGridLayoutA, err)
	}
	if cfg.LayoutB, err = teamLayout(getenv(EnvGridLayoutB), shared); err != nil {
		return cfg, fmt.Errorf("%s: %w", EnvGridLayoutB, err)
	}

	if raw := getenv(EnvGridColumns); raw != "" {
		columns, err := strconv.Atoi(raw)
		if err != nil || columns < 1 {
			return cfg, fmt.Errorf("%s: must be a positive integer, got %q", EnvGridColumns, raw)
		}
		cfg.Columns = columns
	}
	return cfg, nil
}

func teamLayout(name, fallback string) ([]model.SlotPosition, error) {
	if name == "" {
		name = fallback
	}
	return model.NamedLayout(name)
}
