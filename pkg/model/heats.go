package model

import (
	"fmt"

	"github.com/samber/lo"
)

// MaxBoatsPerHeat caps heat size regardless of the number of lanes
const MaxBoatsPerHeat = 5

// SplitIntoHeats distributes boats into heats of at most MaxBoatsPerHeat, numbering boats from 1 within each heat.
// Every heat but the last one is full.
func SplitIntoHeats(boats int) [][]BoatId {
	if boats <= 0 {
		return nil
	}

	heats := make([][]BoatId, (boats+MaxBoatsPerHeat-1)/MaxBoatsPerHeat)
	for i := range heats {
		size := MaxBoatsPerHeat
		if remaining := boats - i*MaxBoatsPerHeat; remaining < size {
			size = remaining
		}
		heats[i] = lo.Map(lo.RangeFrom(1, size), func(id int, _ int) BoatId { return BoatId(id) })
	}
	return heats
}

// GenerateRaces expands class definitions into one race per (class, category, division), keeping the definition order
func GenerateRaces(classes []RawClass) []Race {
	races := make([]Race, 0)
	for _, class := range classes {
		for _, category := range class.Categories {
			for _, division := range category.Divisions {
				id := RaceId(fmt.Sprintf("%v_%v_%v", class.Class, category.Name, division))
				race := NewRace(id, SplitIntoHeats(class.Boats))
				race.Class, race.Category, race.Division = class.Class, category.Name, division
				races = append(races, race)
			}
		}
	}
	return races
}
