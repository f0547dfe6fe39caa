package report

import (
	"cmp"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/limaJavier/regatta/pkg/model"

	"github.com/samber/lo"
)

type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatJSON
)

var formatNames = map[Format]string{
	FormatText: "text",
	FormatCSV:  "csv",
	FormatJSON: "json",
}

func ParseFormat(name string) (Format, error) {
	format, ok := lo.FindKey(formatNames, strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown report format %q, allowed values are %v", name, lo.Values(formatNames))
	}
	return format, nil
}

func (format Format) String() string {
	return formatNames[format]
}

// Row is one line of the running order
type Row struct {
	Label string        `json:"label"`
	Time  string        `json:"time"`
	Start int           `json:"start"`
	Race  model.RaceId  `json:"race"`
	Heat  model.HeatKey `json:"heat"`
	Lanes []string      `json:"lanes"` // One cell per lane, empty when the lane is free
}

// Rows sorts heats by start time, breaking ties by race name and heat index, and numbers them.
// Races with a single heat get a bare number, the others a number plus the heat letter, and the number advances
// once the last heat of a race has been listed.
func Rows(schedule *model.Schedule) []Row {
	heatCounts := make(map[model.RaceId]int, len(schedule.Races))
	for _, race := range schedule.Races {
		heatCounts[race.Race] = len(race.Heats)
	}

	heats := schedule.Heats()
	slices.SortStableFunc(heats, func(a, b model.HeatSchedule) int {
		return cmp.Or(
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.Key.Race, b.Key.Race),
			cmp.Compare(a.Key.Heat, b.Key.Heat),
		)
	})

	rows := make([]Row, 0, len(heats))
	raceNumber := 1
	for _, heat := range heats {
		label := fmt.Sprint(raceNumber)
		if heatCounts[heat.Key.Race] > 1 {
			label += heat.Key.Heat.Letter()
		}

		lanes := make([]string, schedule.Lanes)
		for boat, lane := range heat.Lanes {
			lanes[lane-1] = fmt.Sprintf("Boat %d", boat)
		}

		rows = append(rows, Row{
			Label: label,
			Time:  model.FormatClock(heat.Start),
			Start: heat.Start,
			Race:  heat.Key.Race,
			Heat:  heat.Key,
			Lanes: lanes,
		})

		if int(heat.Key.Heat) == heatCounts[heat.Key.Race]-1 {
			raceNumber++
		}
	}
	return rows
}

func Header(lanes int) []string {
	header := []string{"heat name", "race time", "race name"}
	for lane := range lanes {
		header = append(header, fmt.Sprintf("lane %d", lane+1))
	}
	return header
}

func (row Row) cells() []string {
	return append([]string{row.Label, row.Time, string(row.Race)}, row.Lanes...)
}

func Write(w io.Writer, schedule *model.Schedule, format Format) error {
	switch format {
	case FormatText:
		return WriteText(w, schedule)
	case FormatCSV:
		return WriteCSV(w, schedule)
	case FormatJSON:
		return WriteJSON(w, schedule)
	default:
		return fmt.Errorf("unknown report format %d", format)
	}
}

// WriteText prints the running order as comma-separated lines preceded by a header
func WriteText(w io.Writer, schedule *model.Schedule) error {
	if _, err := fmt.Fprintln(w, strings.Join(Header(schedule.Lanes), ", ")); err != nil {
		return err
	}
	for _, row := range Rows(schedule) {
		if _, err := fmt.Fprintln(w, strings.Join(row.cells(), ", ")); err != nil {
			return err
		}
	}
	return nil
}

func WriteCSV(w io.Writer, schedule *model.Schedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header(schedule.Lanes)); err != nil {
		return err
	}
	for _, row := range Rows(schedule) {
		if err := writer.Write(row.cells()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteJSON(w io.Writer, schedule *model.Schedule) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Rows(schedule))
}
