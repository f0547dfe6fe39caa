package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/limaJavier/regatta/internal/config"
	"github.com/limaJavier/regatta/internal/logger"
	"github.com/limaJavier/regatta/internal/metrics"
	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/sat"
)

// ErrVerification reports a schedule returned by the solver that breaks a scheduling rule.
var ErrVerification = errors.New("schedule failed verification")

// Publisher distributes solved schedules.
type Publisher interface {
	PublishSchedule(runID string, schedule *model.Schedule) error
}

// Run is the outcome of one scheduling request. Schedule is nil unless Stats.Status is solved.
type Run struct {
	ID       string
	Schedule *model.Schedule
	Stats    model.Stats
}

// Service builds, verifies, records and publishes schedules.
type Service struct {
	scheduler model.Scheduler
	strategy  string
	backend   string
	regatta   config.RegattaConfig
	timeout   time.Duration
	sink      metrics.Sink
	publisher Publisher
	log       logger.Logger
}

// New creates a Service from the configuration. A nil publisher disables publication.
func New(cfg *config.Config, sink metrics.Sink, publisher Publisher) (*Service, error) {
	strategy, err := model.ParseStrategy(cfg.Solver.Strategy)
	if err != nil {
		return nil, err
	}
	solver, err := sat.New(cfg.Solver.Backend, cfg.Solver.Binaries)
	if err != nil {
		return nil, fmt.Errorf("sat solver: %w", err)
	}
	scheduler, err := model.NewScheduler(strategy, csp.NewSATSolver(solver))
	if err != nil {
		return nil, err
	}

	service := NewService(scheduler, cfg.Solver.Strategy, cfg.Solver.Backend, sink, publisher)
	service.regatta = cfg.Regatta
	service.timeout = cfg.Solver.Timeout()
	return service, nil
}

// NewService wires an already built scheduler, using default regatta settings.
func NewService(scheduler model.Scheduler, strategy, backend string, sink metrics.Sink, publisher Publisher) *Service {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Service{
		scheduler: scheduler,
		strategy:  strategy,
		backend:   backend,
		regatta:   config.Default().Regatta,
		timeout:   model.DefaultTimeout,
		sink:      sink,
		publisher: publisher,
		log:       logger.New("scheduler"),
	}
}

// Settings resolves the model settings of a request, overlaying the given overrides on the configured regatta.
func (s *Service) Settings(override *config.RegattaConfig, timeoutSeconds int) (model.Settings, error) {
	regatta := s.regatta
	if override != nil {
		regatta = regatta.Merge(*override)
	}
	timeout := s.timeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return regatta.Settings(timeout)
}

// Schedule runs one scheduling request. Infeasible and undecided outcomes are not errors, Run.Stats tells them apart.
func (s *Service) Schedule(ctx context.Context, regatta model.Regatta, settings model.Settings) (Run, error) {
	run := Run{ID: uuid.NewString()}
	s.log.Debugw("scheduling", map[string]any{
		"run_id":   run.ID,
		"races":    len(regatta.Races),
		"strategy": s.strategy,
		"backend":  s.backend,
		"lanes":    settings.Lanes,
	})

	schedule, stats, err := s.scheduler.Build(ctx, regatta, settings)
	run.Stats = stats
	if err == nil && schedule != nil && !s.scheduler.Verify(schedule, regatta, settings) {
		err = fmt.Errorf("run %s: %w", run.ID, ErrVerification)
	}
	s.record(run, err)
	if err != nil {
		s.log.Errorf("run %s failed: %v", run.ID, err)
		return run, err
	}

	if schedule == nil {
		s.log.Warnf("run %s: %s", run.ID, stats.Diagnostic())
		return run, nil
	}
	run.Schedule = schedule
	s.log.Infof("run %s: %s (%d variables, %d clauses)", run.ID, stats.Diagnostic(), stats.Variables, stats.Clauses)

	if s.publisher != nil {
		// Publication is best effort, the schedule stands regardless
		if err := s.publisher.PublishSchedule(run.ID, schedule); err != nil {
			s.log.Errorf("run %s: %v", run.ID, err)
		}
	}
	return run, nil
}

func (s *Service) record(run Run, err error) {
	status := run.Stats.Status.String()
	if err != nil {
		status = "error"
	}
	if recordErr := s.sink.RecordSolve(metrics.SolveEvent{
		RunID:     run.ID,
		Strategy:  s.strategy,
		Backend:   s.backend,
		Status:    status,
		Heats:     run.Stats.Heats,
		Boats:     run.Stats.Boats,
		Variables: run.Stats.Variables,
		Clauses:   run.Stats.Clauses,
		Duration:  run.Stats.Duration,
		Time:      time.Now(),
	}); recordErr != nil {
		s.log.Warnf("run %s: cannot record metrics: %v", run.ID, recordErr)
	}
}
