package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromJson(t *testing.T) {
	t.Run("Default regatta", func(t *testing.T) {
		regatta, err := InputFromJson("testdata/satisfiable/default_regatta.json")

		require.NoError(t, err)
		assert.Len(t, regatta.Races, 39)
		assert.Len(t, regatta.Heats(), 66)
		assert.Equal(t, 288, regatta.Boats())
	})

	t.Run("Classes before explicit races", func(t *testing.T) {
		regatta, err := InputFromJson("testdata/satisfiable/mixed_sources.json")

		require.NoError(t, err)
		require.Len(t, regatta.Races, 4)
		assert.Equal(t, RaceId("2-_Open_Mixed"), regatta.Races[0].Id)
		assert.Equal(t, []BoatId{3, 1, 2}, regatta.Races[1].Heats[0].Boats)
		assert.Equal(t, "Masters", regatta.Races[1].Category)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := InputFromJson("testdata/malformed/unknown_field.json")

		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Duplicate race", func(t *testing.T) {
		_, err := InputFromJson("testdata/malformed/duplicate_race.json")

		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.ErrorContains(t, err, "1x_Open_Womens")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := InputFromJson("testdata/absent.json")

		assert.Error(t, err)
	})
}

func TestDecodeRawInput(t *testing.T) {
	rawInput, err := DecodeRawInput(map[string]any{
		"races": []any{
			map[string]any{"name": "4+_Open_Mixed", "heats": []any{[]any{1.0, 2.0}}},
		},
	})

	require.NoError(t, err)
	require.Len(t, rawInput.Races, 1)
	assert.Equal(t, [][]int{{1, 2}}, rawInput.Races[0].Heats)
}
