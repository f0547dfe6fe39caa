package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/limaJavier/regatta/pkg/model"
)

var generateJSON bool

var generateCmd = &cobra.Command{
	Use:   "generate <entry-file>",
	Short: "Print the races and heats generated from an entry file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		regatta, err := model.InputFromJson(args[0])
		if err != nil {
			return fmt.Errorf("cannot parse entry file: %w", err)
		}
		if generateJSON {
			return writeHeatsJSON(cmd.OutOrStdout(), regatta)
		}
		return writeHeats(cmd.OutOrStdout(), regatta)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print races as JSON, heats as lists of boat ids")
	rootCmd.AddCommand(generateCmd)
}

// writeHeats prints one line per heat, "{race} {letter}: {boats}"
func writeHeats(w io.Writer, regatta model.Regatta) error {
	for _, race := range regatta.Races {
		for _, heat := range race.Heats {
			boats := lo.Map(heat.Boats, func(boat model.BoatId, _ int) string { return fmt.Sprint(boat) })
			if _, err := fmt.Fprintf(w, "%v %v: %v\n", race.Id, heat.Key.Heat.Letter(), strings.Join(boats, ", ")); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d races, %d heats, %d boats\n", len(regatta.Races), len(regatta.Heats()), regatta.Boats())
	return err
}

func writeHeatsJSON(w io.Writer, regatta model.Regatta) error {
	races := lo.Map(regatta.Races, func(race model.Race, _ int) model.RawRace {
		return model.RawRace{
			Name: string(race.Id),
			Heats: lo.Map(race.Heats, func(heat model.Heat, _ int) []int {
				return lo.Map(heat.Boats, func(boat model.BoatId, _ int) int { return int(boat) })
			}),
		}
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(model.RawRegattaInput{Races: races})
}
