package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/limaJavier/regatta/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heat(race model.RaceId, index model.HeatIndex, start int, lanes map[model.BoatId]int) model.HeatSchedule {
	return model.HeatSchedule{Key: model.HeatKey{Race: race, Heat: index}, Start: start, Lanes: lanes}
}

func sampleSchedule() *model.Schedule {
	return &model.Schedule{
		Lanes: 5,
		Races: []model.RaceSchedule{
			{Race: "2x_Open_Mixed", Heats: []model.HeatSchedule{
				heat("2x_Open_Mixed", 0, 496, map[model.BoatId]int{1: 2, 2: 1}),
			}},
			{Race: "1x_Open_Womens", Heats: []model.HeatSchedule{
				heat("1x_Open_Womens", 0, 480, map[model.BoatId]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}),
				heat("1x_Open_Womens", 1, 488, map[model.BoatId]int{1: 5, 2: 3}),
			}},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleSchedule())

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1a", "1b", "2"}, []string{rows[0].Label, rows[1].Label, rows[2].Label})
	assert.Equal(t, "08:08", rows[1].Time)
	assert.Equal(t, []string{"", "Boat 2", "", "", "Boat 1"}, rows[1].Lanes)
	assert.Equal(t, []string{"Boat 2", "Boat 1", "", "", ""}, rows[2].Lanes)
}

func TestRowsTieBreak(t *testing.T) {
	schedule := &model.Schedule{
		Lanes: 2,
		Races: []model.RaceSchedule{
			{Race: "8+_Open_Mens", Heats: []model.HeatSchedule{heat("8+_Open_Mens", 0, 480, map[model.BoatId]int{1: 1})}},
			{Race: "4+_Open_Mens", Heats: []model.HeatSchedule{
				heat("4+_Open_Mens", 1, 480, map[model.BoatId]int{1: 2}),
				heat("4+_Open_Mens", 0, 480, map[model.BoatId]int{1: 1}),
			}},
		},
	}

	rows := Rows(schedule)

	assert.Equal(t, []model.HeatKey{
		{Race: "4+_Open_Mens", Heat: 0},
		{Race: "4+_Open_Mens", Heat: 1},
		{Race: "8+_Open_Mens", Heat: 0},
	}, []model.HeatKey{rows[0].Heat, rows[1].Heat, rows[2].Heat})
	assert.Equal(t, []string{"1a", "1b", "2"}, []string{rows[0].Label, rows[1].Label, rows[2].Label})
}

func TestWriteText(t *testing.T) {
	schedule := &model.Schedule{
		Lanes: 5,
		Races: []model.RaceSchedule{{Race: "1x_Open_Womens", Heats: []model.HeatSchedule{
			heat("1x_Open_Womens", 0, 480, map[model.BoatId]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}),
		}}},
	}
	var buffer bytes.Buffer

	require.NoError(t, WriteText(&buffer, schedule))

	assert.Equal(t,
		"heat name, race time, race name, lane 1, lane 2, lane 3, lane 4, lane 5\n"+
			"1, 08:00, 1x_Open_Womens, Boat 1, Boat 2, Boat 3, Boat 4, Boat 5\n",
		buffer.String(),
	)
}

func TestWriteCSV(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, Write(&buffer, sampleSchedule(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "heat name,race time,race name,lane 1,lane 2,lane 3,lane 4,lane 5", lines[0])
	assert.Equal(t, "2,08:16,2x_Open_Mixed,Boat 2,Boat 1,,,", lines[3])
}

func TestWriteJSON(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, Write(&buffer, sampleSchedule(), FormatJSON))

	var rows []Row
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &rows))
	assert.Equal(t, Rows(sampleSchedule()), rows)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
	assert.Error(t, Write(&bytes.Buffer{}, sampleSchedule(), Format(5)))
}
