package driver

import (
	"slices"
	"testing"

	"github.com/llxisdsh/lockbench"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	var reg Registry
	cfg := &Config{
		Name:     "exclusive/read-heavy",
		Strategy: lockbench.Exclusive,
		Read:     lockbench.HeavyRead,
	}
	require.NoError(t, reg.Register(cfg))
	got, ok := reg.Lookup("exclusive/read-heavy")
	require.True(t, ok)
	require.Equal(t, cfg, got)
	require.Equal(t, 1, reg.Len())

	_, ok = reg.Lookup("no-such-config")
	require.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	var reg Registry
	cfg := &Config{Name: "dup", Strategy: lockbench.Exclusive, Read: lockbench.LightRead}
	require.NoError(t, reg.Register(cfg))
	err := reg.Register(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
	require.Equal(t, 1, reg.Len())
}

func TestRegistryRejectsInvalid(t *testing.T) {
	var reg Registry
	require.Error(t, reg.Register(nil))
	require.Error(t, reg.Register(&Config{Name: "x"}))
	require.Error(t, reg.Register(&Config{Name: "x", Strategy: lockbench.Exclusive}))
	require.Error(t, reg.Register(&Config{Strategy: lockbench.Exclusive, Read: lockbench.LightRead}))
	require.Error(t, reg.Register(&Config{
		Name:     "x",
		Strategy: lockbench.Exclusive,
		Read:     lockbench.LightRead,
		Workers:  []int{4, 0},
	}))
	require.Equal(t, 0, reg.Len())
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	var reg Registry
	require.Panics(t, func() { reg.MustRegister(&Config{}) })
}

func TestRegistryNamesSorted(t *testing.T) {
	var reg Registry
	for _, cfg := range Defaults() {
		require.NoError(t, reg.Register(cfg))
	}
	names := reg.Names()
	require.Len(t, names, 6)
	require.True(t, slices.IsSorted(names), "names not sorted: %v", names)
}

func TestDefaultsShape(t *testing.T) {
	defs := Defaults()
	require.Len(t, defs, 6)
	seen := make(map[string]bool)
	readOnly := 0
	for _, cfg := range defs {
		require.NoError(t, cfg.validate())
		require.False(t, seen[cfg.Name], "duplicate name %q", cfg.Name)
		seen[cfg.Name] = true
		if cfg.Write == nil {
			readOnly++
			require.Equal(t, []int{1, 2, 4, 8}, cfg.WorkerCounts())
		} else {
			require.Equal(t, []int{2, 4, 8}, cfg.WorkerCounts())
		}
	}
	require.Equal(t, 2, readOnly)
}
