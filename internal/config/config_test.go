package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/regatta/pkg/model"
)

func TestLoadYAML(t *testing.T) {
	cfg, err := Load("testdata/regatta.yaml")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Regatta.Lanes)
	assert.Equal(t, 8, cfg.Regatta.Cadence)
	assert.Equal(t, "postponed", cfg.Solver.Strategy)
	assert.Equal(t, 15*time.Second, cfg.Solver.Timeout())
	assert.Equal(t, "/opt/solvers/kissat", cfg.Solver.Binaries["kissat"])
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Prometheus)
	assert.Equal(t, "regatta/running-order", cfg.MQTT.Topic)
	assert.Equal(t, 86400, cfg.Cache.TTLSeconds)

	settings, err := cfg.Regatta.Settings(cfg.Solver.Timeout())
	require.NoError(t, err)
	assert.Equal(t, 450, settings.Start)
	assert.Equal(t, 1080, settings.End)
	assert.Equal(t, 720, settings.Cutoff)
	assert.Equal(t, model.OrderInsertion, settings.Ordering)
	assert.Equal(t, model.PriorityIndicator, settings.Priority("4+"))
	assert.Equal(t, model.PriorityNone, settings.Priority("2x"))
	assert.Equal(t, 15*time.Second, settings.Timeout)
}

func TestLoadJSONWithDefaults(t *testing.T) {
	cfg, err := Load("testdata/regatta.json")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Regatta.Lanes)
	assert.Equal(t, "08:00", cfg.Regatta.Start)
	assert.Equal(t, "17:00", cfg.Regatta.End)
	assert.Equal(t, "embedded", cfg.Solver.Strategy)
	assert.Equal(t, "gini", cfg.Solver.Backend)
	assert.Equal(t, 60, cfg.Solver.TimeoutSeconds)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.MQTT.Enabled())
	assert.Empty(t, cfg.MQTT.Topic)

	settings, err := cfg.Regatta.Settings(cfg.Solver.Timeout())
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHard, settings.Priority("1x"))
	assert.Equal(t, model.PriorityIndicator, settings.Priority("2-"))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("REGATTA_SOLVER__BACKEND", "cadical")
	t.Setenv("REGATTA_SOLVER__TIMEOUT_SECONDS", "5")
	t.Setenv("REGATTA_REGATTA__LANES", "8")

	cfg, err := Load("testdata/regatta.json")
	require.NoError(t, err)

	assert.Equal(t, "cadical", cfg.Solver.Backend)
	assert.Equal(t, 5, cfg.Solver.TimeoutSeconds)
	assert.Equal(t, 8, cfg.Regatta.Lanes)
	assert.ElementsMatch(t, []string{"REGATTA_SOLVER__BACKEND", "REGATTA_SOLVER__TIMEOUT_SECONDS", "REGATTA_REGATTA__LANES"}, Environment())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	for _, scenario := range []struct {
		name string
		path string
	}{
		{"Unsupported format", write("config.toml", "lanes = 5")},
		{"Missing file", filepath.Join(dir, "absent.yaml")},
		{"Bad clock", write("clock.yaml", "regatta:\n  start: noon\n")},
		{"Empty window", write("window.yaml", "regatta:\n  start: \"17:00\"\n  end: \"08:00\"\n")},
		{"Unknown priority", write("priority.yaml", "regatta:\n  priorities:\n    1x: soft\n")},
		{"Unknown backend", write("backend.yaml", "solver:\n  backend: z3\n")},
		{"Unknown strategy", write("strategy.yaml", "solver:\n  strategy: hybrid\n")},
		{"Unknown level", write("level.yaml", "logging:\n  level: loud\n")},
		{"Invalid qos", write("qos.yaml", "mqtt:\n  broker: tcp://localhost:1883\n  qos: 3\n")},
	} {
		t.Run(scenario.name, func(t *testing.T) {
			_, err := Load(scenario.path)
			assert.Error(t, err)
		})
	}
}

func TestRegattaMerge(t *testing.T) {
	base := Default().Regatta

	merged := base.Merge(RegattaConfig{Lanes: 3, End: "12:00"})

	assert.Equal(t, 3, merged.Lanes)
	assert.Equal(t, "12:00", merged.End)
	assert.Equal(t, base.Start, merged.Start)
	assert.Equal(t, base.Priorities, merged.Priorities)
	assert.Equal(t, 5, base.Lanes)
}
