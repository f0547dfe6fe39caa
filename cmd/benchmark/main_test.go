package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/sat"
)

func TestLoadScenarios(t *testing.T) {
	scenarios, err := loadScenarios(scenarioDirectory)
	require.NoError(t, err)

	names := make([]string, 0, len(scenarios))
	for _, scenario := range scenarios {
		names = append(names, scenario.Name)
	}
	assert.Contains(t, names, "single_heat")
	assert.Contains(t, names, "default_regatta")
}

func TestSummarize(t *testing.T) {
	scenarios := []Scenario{{Name: "single_heat"}}
	embedded := Variant{Strategy: model.StrategyEmbedded, Backend: sat.GiniBackend}
	postponed := Variant{Strategy: model.StrategyPostponed, Backend: sat.GiniBackend}
	measurements := []Measurement{
		{Scenario: "single_heat", Variant: embedded, Status: csp.Optimal, Duration: 10 * time.Millisecond},
		{Scenario: "single_heat", Variant: embedded, Status: csp.Optimal, Duration: 30 * time.Millisecond},
		{Scenario: "single_heat", Variant: embedded, Status: csp.Unknown, Duration: 20 * time.Millisecond},
	}

	summaries := summarize(scenarios, []Variant{embedded, postponed}, measurements)

	require.Len(t, summaries, 1)
	summary := summaries[0]
	assert.Equal(t, 3, summary.Runs)
	assert.Equal(t, 2, summary.Solved)
	assert.InDelta(t, 20.0, summary.MeanMs, 1e-9)
	assert.InDelta(t, 20.0, summary.MedianMs, 1e-9)
	assert.InDelta(t, 10.0, summary.StdDevMs, 1e-9)
}

func TestMeasureAllAndCsv(t *testing.T) {
	regatta := model.Regatta{Races: []model.Race{model.NewRace("4+_Open_Mens", [][]model.BoatId{{1, 2}, {1, 2, 3}})}}
	scenarios := []Scenario{{Name: "two_heats", Regatta: regatta, Races: 1, Heats: 2, Boats: 5}}
	variants := []Variant{
		{Strategy: model.StrategyEmbedded, Backend: sat.GiniBackend},
		{Strategy: model.StrategyPostponed, Backend: sat.GiniBackend},
	}

	measurements, err := measureAll(context.Background(), scenarios, variants, model.DefaultSettings(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, measurements, 4)
	for _, measurement := range measurements {
		assert.True(t, measurement.Status.Solved())
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, toCsv(path, summarize(scenarios, variants, measurements)))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"two_heats", "1", "2", "5", "embedded", "gini", "2", "2", "optimal"}, records[1][:9])
}
