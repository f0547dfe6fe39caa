package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawCategory struct {
	Name      string   `json:"name"`
	Divisions []string `json:"divisions"`
}

// RawClass declares the races of a boat class: one per category and division, all with the same number of boats
type RawClass struct {
	Class      string        `json:"class"`
	Boats      int           `json:"boats"`
	Categories []RawCategory `json:"categories"`
}

// RawRace declares a race whose heats were already generated
type RawRace struct {
	Name  string  `json:"name"`
	Heats [][]int `json:"heats"`
}

type RawRegattaInput struct {
	Classes []RawClass `json:"classes"`
	Races   []RawRace  `json:"races"`
}

func InputFromJson(file string) (Regatta, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Regatta{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Regatta{}, err
	}

	rawInput, err := DecodeRawInput(inputJson)
	if err != nil {
		return Regatta{}, err
	}
	return ProcessRawInput(rawInput)
}

// DecodeRawInput maps a generic JSON document onto RawRegattaInput, rejecting unknown fields
func DecodeRawInput(inputJson map[string]any) (RawRegattaInput, error) {
	var rawInput RawRegattaInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &rawInput,
	})
	if err != nil {
		return RawRegattaInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return RawRegattaInput{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return rawInput, nil
}

// ProcessRawInput generates the heats of every class and appends the explicitly declared races
func ProcessRawInput(rawInput RawRegattaInput) (Regatta, error) {
	regatta := Regatta{Races: GenerateRaces(rawInput.Classes)}

	for _, rawRace := range rawInput.Races {
		heats := lo.Map(rawRace.Heats, func(boats []int, _ int) []BoatId {
			return lo.Map(boats, func(boat int, _ int) BoatId { return BoatId(boat) })
		})
		regatta.Races = append(regatta.Races, NewRace(RaceId(rawRace.Name), heats))
	}

	// Make sure race names are unique, since they identify races
	seen := make(map[RaceId]bool)
	for _, race := range regatta.Races {
		if race.Id == "" {
			return Regatta{}, fmt.Errorf("%w: race without a name", ErrMalformedInput)
		} else if seen[race.Id] {
			return Regatta{}, fmt.Errorf("%w: duplicate race %q", ErrMalformedInput, race.Id)
		}
		seen[race.Id] = true
	}

	return regatta, nil
}
