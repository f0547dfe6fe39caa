package model

import (
	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/samber/lo"
)

type constraintState struct {
	settings   Settings
	order      []HeatKey // Running order fixed before solving
	heats      map[HeatKey]Heat
	classes    map[RaceId]string
	starts     map[HeatKey]csp.IntVar
	lanes      map[BoatKey]csp.IntVar // Empty when lanes are assigned after solving
	indicators map[HeatKey]csp.BoolVar
}

// declareVariables creates one start variable per heat, one lane variable per boat when lanes are embedded,
// and the before-cutoff indicators
func declareVariables(model *csp.Model, regatta Regatta, settings Settings, embedLanes bool) constraintState {
	state := constraintState{
		settings:   settings,
		order:      regatta.Order(settings.Ordering),
		heats:      make(map[HeatKey]Heat),
		classes:    make(map[RaceId]string),
		starts:     make(map[HeatKey]csp.IntVar),
		lanes:      make(map[BoatKey]csp.IntVar),
		indicators: make(map[HeatKey]csp.BoolVar),
	}

	for _, race := range regatta.Races {
		state.classes[race.Id] = race.Class
		for _, heat := range race.Heats {
			state.heats[heat.Key] = heat
			state.starts[heat.Key] = model.NewIntVar(settings.Start, settings.End, heat.Key.String())

			if settings.Priority(race.Class) == PriorityIndicator {
				state.indicators[heat.Key] = model.NewBoolVar(heat.Key.String() + "_BeforeCutoff")
			}

			if !embedLanes {
				continue
			}
			for _, boat := range heat.Boats {
				key := BoatKey{Heat: heat.Key, Boat: boat}
				state.lanes[key] = model.NewIntVar(1, settings.Lanes, key.String())
			}
		}
	}

	return state
}

// The first heat of the running order opens the day
func anchorConstraints(state constraintState) []csp.Constraint {
	return []csp.Constraint{
		csp.Equal{X: state.starts[state.order[0]], Value: state.settings.Start},
	}
}

// Every heat starts exactly one cadence after its predecessor in the running order
func cadenceConstraints(state constraintState) []csp.Constraint {
	constraints := make([]csp.Constraint, 0, len(state.order))
	for i := 1; i < len(state.order); i++ {
		constraints = append(constraints, csp.Offset{
			X:     state.starts[state.order[i-1]],
			Y:     state.starts[state.order[i]],
			Delta: state.settings.Cadence,
		})
	}
	return constraints
}

// At no instant of the day may more heats hold the course than there are lanes
func capacityConstraints(state constraintState) []csp.Constraint {
	return []csp.Constraint{
		csp.Cumulative{
			Starts:   lo.Map(state.order, func(key HeatKey, _ int) csp.IntVar { return state.starts[key] }),
			Duration: state.settings.Cadence,
			Capacity: state.settings.Lanes,
			From:     state.settings.Start,
			To:       state.settings.End,
		},
	}
}

func priorityConstraints(state constraintState) []csp.Constraint {
	constraints := make([]csp.Constraint, 0)
	for _, key := range state.order {
		switch state.settings.Priority(state.classes[key.Race]) {
		case PriorityHard:
			constraints = append(constraints, csp.LessThan{X: state.starts[key], Bound: state.settings.Cutoff})
		case PriorityIndicator:
			// The indicator mirrors the start time and nothing constrains its value
			constraints = append(constraints, csp.ReifiedLessThan{
				B:     state.indicators[key],
				X:     state.starts[key],
				Bound: state.settings.Cutoff,
			})
		}
	}
	return constraints
}

// Boats sharing a heat take pairwise distinct lanes
func laneConstraints(state constraintState) []csp.Constraint {
	constraints := make([]csp.Constraint, 0, len(state.order))
	for _, key := range state.order {
		heat := state.heats[key]
		constraints = append(constraints, csp.AllDifferent{
			Vars: lo.Map(heat.Boats, func(boat BoatId, _ int) csp.IntVar {
				return state.lanes[BoatKey{Heat: key, Boat: boat}]
			}),
		})
	}
	return constraints
}
