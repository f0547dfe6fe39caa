package model

import (
	"errors"
	"fmt"
)

// ErrMalformedInput reports inputs that no model should be built from
var ErrMalformedInput = errors.New("malformed input")

// validate rejects inputs that would only yield an unsatisfiable model, before any variable is declared
func validate(regatta Regatta, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	var errs []error
	races := make(map[RaceId]bool)
	heats := 0
	for _, race := range regatta.Races {
		if races[race.Id] {
			errs = append(errs, fmt.Errorf("duplicate race %q", race.Id))
		}
		races[race.Id] = true

		for _, heat := range race.Heats {
			heats++
			if len(heat.Boats) == 0 {
				errs = append(errs, fmt.Errorf("heat %v has no boats", heat.Key))
			} else if len(heat.Boats) > settings.Lanes {
				errs = append(errs, fmt.Errorf("heat %v has %d boats but only %d lanes are available", heat.Key, len(heat.Boats), settings.Lanes))
			}

			boats := make(map[BoatId]bool)
			for _, boat := range heat.Boats {
				if boat < 1 {
					errs = append(errs, fmt.Errorf("heat %v has non-positive boat id %d", heat.Key, boat))
				} else if boats[boat] {
					errs = append(errs, fmt.Errorf("heat %v has duplicate boat id %d", heat.Key, boat))
				}
				boats[boat] = true
			}
		}
	}
	if heats == 0 {
		errs = append(errs, errors.New("regatta has no heats"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return nil
}
