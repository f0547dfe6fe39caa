package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/regatta/internal/config"
	"github.com/limaJavier/regatta/internal/metrics"
	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/limaJavier/regatta/pkg/model"
)

type recordingSink struct {
	events []metrics.SolveEvent
}

func (s *recordingSink) RecordSolve(ev metrics.SolveEvent) error {
	s.events = append(s.events, ev)
	return nil
}

type recordingPublisher struct {
	runs []string
	err  error
}

func (p *recordingPublisher) PublishSchedule(runID string, _ *model.Schedule) error {
	p.runs = append(p.runs, runID)
	return p.err
}

// stubScheduler returns a fixed outcome and lets Verify be forced
type stubScheduler struct {
	schedule *model.Schedule
	stats    model.Stats
	err      error
	invalid  bool
}

func (s *stubScheduler) Build(context.Context, model.Regatta, model.Settings) (*model.Schedule, model.Stats, error) {
	return s.schedule, s.stats, s.err
}

func (s *stubScheduler) Verify(*model.Schedule, model.Regatta, model.Settings) bool {
	return !s.invalid
}

func singleHeat() model.Regatta {
	return model.Regatta{Races: []model.Race{model.NewRace("1x_Open_Womens", [][]model.BoatId{{1, 2, 3, 4, 5}})}}
}

func TestScheduleWithGini(t *testing.T) {
	//** Arrange
	sink, publisher := &recordingSink{}, &recordingPublisher{}
	service, err := New(config.Default(), sink, publisher)
	require.NoError(t, err)
	settings, err := service.Settings(nil, 0)
	require.NoError(t, err)

	//** Act
	run, err := service.Schedule(context.Background(), singleHeat(), settings)

	//** Assert
	require.NoError(t, err)
	require.NotNil(t, run.Schedule)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, csp.Optimal, run.Stats.Status)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "optimal", sink.events[0].Status)
	assert.Equal(t, "gini", sink.events[0].Backend)
	assert.Equal(t, []string{run.ID}, publisher.runs)
}

func TestScheduleOutcomes(t *testing.T) {
	settings := model.DefaultSettings()

	t.Run("Infeasible", func(t *testing.T) {
		sink, publisher := &recordingSink{}, &recordingPublisher{}
		service := NewService(&stubScheduler{stats: model.Stats{Status: csp.Infeasible}}, "embedded", "gini", sink, publisher)

		run, err := service.Schedule(context.Background(), singleHeat(), settings)

		require.NoError(t, err)
		assert.Nil(t, run.Schedule)
		assert.Equal(t, "infeasible", sink.events[0].Status)
		assert.Empty(t, publisher.runs)
	})

	t.Run("Verification failure", func(t *testing.T) {
		sink := &recordingSink{}
		scheduler := &stubScheduler{schedule: &model.Schedule{}, stats: model.Stats{Status: csp.Optimal}, invalid: true}
		service := NewService(scheduler, "embedded", "gini", sink, nil)

		run, err := service.Schedule(context.Background(), singleHeat(), settings)

		assert.ErrorIs(t, err, ErrVerification)
		assert.Nil(t, run.Schedule)
		assert.Equal(t, "error", sink.events[0].Status)
	})

	t.Run("Backend failure", func(t *testing.T) {
		service := NewService(&stubScheduler{err: errors.New("binary not found")}, "embedded", "kissat", nil, nil)

		_, err := service.Schedule(context.Background(), singleHeat(), settings)

		assert.ErrorContains(t, err, "binary not found")
	})

	t.Run("Publication failure keeps the schedule", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker down")}
		scheduler := &stubScheduler{schedule: &model.Schedule{}, stats: model.Stats{Status: csp.Optimal}}
		service := NewService(scheduler, "embedded", "gini", nil, publisher)

		run, err := service.Schedule(context.Background(), singleHeat(), settings)

		require.NoError(t, err)
		assert.NotNil(t, run.Schedule)
		assert.Len(t, publisher.runs, 1)
	})
}

func TestSettings(t *testing.T) {
	service := NewService(&stubScheduler{}, "embedded", "gini", nil, nil)

	settings, err := service.Settings(&config.RegattaConfig{Lanes: 2, Start: "09:00"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, settings.Lanes)
	assert.Equal(t, 540, settings.Start)
	assert.Equal(t, 1020, settings.End)
	assert.Equal(t, float64(5), settings.Timeout.Seconds())

	_, err = service.Settings(&config.RegattaConfig{Start: "25:00"}, 0)
	assert.Error(t, err)
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Strategy = "hybrid"

	_, err := New(cfg, nil, nil)
	assert.Error(t, err)
}
