package model

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/limaJavier/regatta/pkg/csp"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type unassignableError struct {
	heat HeatKey
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("not all boats of heat %v can be assigned a lane", err.heat)
}

func newStats(regatta Regatta, settings Settings) Stats {
	return Stats{
		Status: csp.Unknown,
		Heats:  len(regatta.Heats()),
		Boats:  regatta.Boats(),
		Budget: settings.Timeout,
	}
}

func buildModel(model *csp.Model, constraints []func(state constraintState) []csp.Constraint, state constraintState) {
	for _, constraint := range constraints {
		for _, generated := range constraint(state) {
			model.Add(generated)
		}
	}
}

// solveModel runs the solver under the settings' budget and records the outcome in stats
func solveModel(ctx context.Context, solver csp.Solver, model *csp.Model, settings Settings, stats *Stats) (*csp.Solution, error) {
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	result, err := solver.Solve(ctx, model)
	stats.Status, stats.Variables, stats.Clauses = result.Status, result.Variables, result.Clauses
	if err != nil {
		return nil, err
	} else if !result.Status.Solved() {
		return nil, nil
	}
	return result.Solution, nil
}

func finish(stats Stats, started time.Time) Stats {
	stats.Duration = time.Since(started)
	return stats
}

// laneAssignment fills every heat of the schedule with a largest matching between its boats and the course lanes
func laneAssignment(schedule *Schedule, regatta Regatta) error {
	for r, race := range regatta.Races {
		for h, heat := range race.Heats {
			lanes, err := assignLanes(heat, schedule.Lanes)
			if err != nil {
				return err
			}
			schedule.Races[r].Heats[h].Lanes = lanes
		}
	}
	return nil
}

func assignLanes(heat Heat, totalLanes int) (map[BoatId]int, error) {
	lanes := lo.RangeFrom(1, totalLanes)

	// Any lane can host any boat
	neighbors := func(boatAny any, laneAny any) (bool, error) {
		return true, nil
	}

	// Transform boats and lanes to slices of any
	boatsAny, lanesAny := lo.Map(heat.Boats, func(boat BoatId, _ int) any { return boat }), lo.Map(lanes, func(lane int, _ int) any { return lane })

	graph, err := bipartitegraph.NewBipartiteGraph(boatsAny, lanesAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching is a maximum one
	if len(matching) < len(heat.Boats) {
		return nil, unassignableError{heat: heat.Key}
	}

	assignments := make(map[BoatId]int, len(heat.Boats))
	for _, edge := range matching {
		boatIndex, laneIndex := edge.Node1, edge.Node2-len(heat.Boats)
		assignments[heat.Boats[boatIndex]] = lanes[laneIndex]
	}
	return assignments, nil
}

// verify checks a schedule against every scheduling rule independently of how it was produced
func verify(schedule *Schedule, regatta Regatta, settings Settings) bool {
	if schedule == nil || validate(regatta, settings) != nil || len(schedule.Races) != len(regatta.Races) {
		return false
	}

	starts := make(map[HeatKey]int)
	for r, race := range regatta.Races {
		raceSchedule := schedule.Races[r]
		if raceSchedule.Race != race.Id || len(raceSchedule.Heats) != len(race.Heats) {
			return false
		}

		for h, heat := range race.Heats {
			heatSchedule := raceSchedule.Heats[h]
			rule := settings.Priority(race.Class)
			beforeCutoff := heatSchedule.Start < settings.Cutoff

			// Check that:
			// - The heat is the expected one
			// - Start lies within the day window
			// - Hard priority classes start before the cutoff
			// - Indicators are present exactly for indicator classes and mirror the start time
			// - Every boat has a lane on the course and no lane is shared
			if heatSchedule.Key != heat.Key ||
				heatSchedule.Start < settings.Start || heatSchedule.Start > settings.End ||
				(rule == PriorityHard && !beforeCutoff) ||
				(rule == PriorityIndicator) != (heatSchedule.BeforeNoon != nil) ||
				(heatSchedule.BeforeNoon != nil && *heatSchedule.BeforeNoon != beforeCutoff) ||
				!validLanes(heatSchedule.Lanes, heat.Boats, settings.Lanes) {
				return false
			}
			starts[heat.Key] = heatSchedule.Start
		}
	}

	// Check anchor and cadence along the running order
	order := regatta.Order(settings.Ordering)
	if starts[order[0]] != settings.Start {
		return false
	}
	for i := 1; i < len(order); i++ {
		if starts[order[i]] != starts[order[i-1]]+settings.Cadence {
			return false
		}
	}

	// Check capacity at every instant of the day
	for instant := settings.Start; instant <= settings.End; instant++ {
		running := lo.CountBy(lo.Values(starts), func(start int) bool {
			return start <= instant && instant < start+settings.Cadence
		})
		if running > settings.Lanes {
			return false
		}
	}

	return true
}

func validLanes(lanes map[BoatId]int, boats []BoatId, totalLanes int) bool {
	if len(lanes) != len(boats) {
		return false
	}
	used := make([]int, 0, len(boats))
	for _, boat := range boats {
		lane, ok := lanes[boat]
		if !ok || lane < 1 || lane > totalLanes || slices.Contains(used, lane) {
			return false
		}
		used = append(used, lane)
	}
	return true
}
