package model

import (
	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/samber/lo"
)

type HeatSchedule struct {
	Key        HeatKey        `json:"key"`
	Start      int            `json:"start"` // Minute of day
	Lanes      map[BoatId]int `json:"lanes"`
	BeforeNoon *bool          `json:"before_noon,omitempty"` // Only set for classes tracked by an indicator
}

type RaceSchedule struct {
	Race  RaceId         `json:"race"`
	Heats []HeatSchedule `json:"heats"`
}

// Schedule keeps races in regatta order and heats in index order
type Schedule struct {
	Lanes int            `json:"lanes"`
	Races []RaceSchedule `json:"races"`
}

func (schedule *Schedule) Heats() []HeatSchedule {
	return lo.FlatMap(schedule.Races, func(race RaceSchedule, _ int) []HeatSchedule { return race.Heats })
}

func (schedule *Schedule) Heat(key HeatKey) (HeatSchedule, bool) {
	return lo.Find(schedule.Heats(), func(heat HeatSchedule) bool { return heat.Key == key })
}

// extractSchedule reads solved values back onto races, heats and boats.
// Lanes are left empty for boats without a lane variable.
func extractSchedule(regatta Regatta, state constraintState, solution *csp.Solution) *Schedule {
	schedule := &Schedule{
		Lanes: state.settings.Lanes,
		Races: make([]RaceSchedule, 0, len(regatta.Races)),
	}

	for _, race := range regatta.Races {
		raceSchedule := RaceSchedule{Race: race.Id, Heats: make([]HeatSchedule, 0, len(race.Heats))}
		for _, heat := range race.Heats {
			heatSchedule := HeatSchedule{
				Key:   heat.Key,
				Start: solution.Value(state.starts[heat.Key]),
				Lanes: make(map[BoatId]int, len(heat.Boats)),
			}
			if indicator, ok := state.indicators[heat.Key]; ok {
				heatSchedule.BeforeNoon = lo.ToPtr(solution.BoolValue(indicator))
			}
			for _, boat := range heat.Boats {
				if lane, ok := state.lanes[BoatKey{Heat: heat.Key, Boat: boat}]; ok {
					heatSchedule.Lanes[boat] = solution.Value(lane)
				}
			}
			raceSchedule.Heats = append(raceSchedule.Heats, heatSchedule)
		}
		schedule.Races = append(schedule.Races, raceSchedule)
	}

	return schedule
}
