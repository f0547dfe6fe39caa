package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// RaceId is the race name, "{class}_{category}_{division}" (e.g. "1x_Open_Womens")
type RaceId string

// HeatIndex is the 0-based position of a heat within its race
type HeatIndex int

// BoatId identifies a boat within its heat
type BoatId int

type HeatKey struct {
	Race RaceId    `json:"race"`
	Heat HeatIndex `json:"heat"`
}

type BoatKey struct {
	Heat HeatKey
	Boat BoatId
}

type Race struct {
	Id       RaceId
	Class    string // Boat class, e.g. "1x" single scull or "8+" eight
	Category string
	Division string
	Heats    []Heat
}

type Heat struct {
	Key   HeatKey
	Boats []BoatId
}

// Regatta holds the races in insertion order
type Regatta struct {
	Races []Race
}

// Ordering selects the deterministic heat order that fixes the running order before solving
type Ordering int

const (
	OrderLexicographic Ordering = iota // Race name, then heat index
	OrderInsertion                     // Race insertion order, then heat index
)

var orderingNames = map[Ordering]string{
	OrderLexicographic: "lexicographic",
	OrderInsertion:     "insertion",
}

func ParseOrdering(name string) (Ordering, error) {
	ordering, ok := lo.FindKey(orderingNames, strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown heat ordering %q, allowed values are %v", name, lo.Values(orderingNames))
	}
	return ordering, nil
}

func (ordering Ordering) String() string {
	return orderingNames[ordering]
}

// Letter renders the heat index as a, b, ..., z, aa, ab, ...
func (index HeatIndex) Letter() string {
	letters := ""
	for value := int(index); ; value = value/26 - 1 {
		letters = string(rune('a'+value%26)) + letters
		if value < 26 {
			break
		}
	}
	return letters
}

func (key HeatKey) String() string {
	return fmt.Sprintf("%v_Heat_%v", key.Race, key.Heat.Letter())
}

func (key BoatKey) String() string {
	return fmt.Sprintf("%v_Boat_%d", key.Heat, key.Boat)
}

// NewRace derives class, category and division from the race name
func NewRace(id RaceId, heats [][]BoatId) Race {
	parts := strings.SplitN(string(id), "_", 3)
	race := Race{Id: id, Class: parts[0]}
	if len(parts) > 1 {
		race.Category = parts[1]
	}
	if len(parts) > 2 {
		race.Division = parts[2]
	}

	race.Heats = lo.Map(heats, func(boats []BoatId, index int) Heat {
		return Heat{Key: HeatKey{Race: id, Heat: HeatIndex(index)}, Boats: boats}
	})
	return race
}

// Heats lists every heat in race insertion order
func (regatta Regatta) Heats() []Heat {
	return lo.FlatMap(regatta.Races, func(race Race, _ int) []Heat { return race.Heats })
}

func (regatta Regatta) Race(id RaceId) (Race, bool) {
	return lo.Find(regatta.Races, func(race Race) bool { return race.Id == id })
}

func (regatta Regatta) Boats() int {
	return lo.SumBy(regatta.Heats(), func(heat Heat) int { return len(heat.Boats) })
}

// Order returns every heat key sorted by the given ordering
func (regatta Regatta) Order(ordering Ordering) []HeatKey {
	position := make(map[RaceId]int, len(regatta.Races))
	for i, race := range regatta.Races {
		position[race.Id] = i
	}

	keys := lo.Map(regatta.Heats(), func(heat Heat, _ int) HeatKey { return heat.Key })
	slices.SortStableFunc(keys, func(a, b HeatKey) int {
		var byRace int
		if ordering == OrderInsertion {
			byRace = cmp.Compare(position[a.Race], position[b.Race])
		} else {
			byRace = cmp.Compare(a.Race, b.Race)
		}
		if byRace != 0 {
			return byRace
		}
		return cmp.Compare(a.Heat, b.Heat)
	})
	return keys
}
