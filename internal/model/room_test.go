package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseSortBy(t *testing.T) {
	testCases := []struct {
		input    string
		expected SortBy
	}{
		{"Random", SortByRandom},
		{"Title", SortByTitle},
		{"title", SortByTitle},
		{"COMMUNITYRATING", SortByCommunityRating},
		{"PremiereDate", SortByPremiereDate},
		{" premieredate ", SortByPremiereDate},
		{"", SortByRandom},
		{"garbage", SortByRandom},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ParseSortBy(tc.input), "input %q", tc.input)
	}
}

func TestSetTimeLimitClamps(t *testing.T) {
	testCases := []struct {
		input    int
		expected int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{5, 5},
		{120, 120},
		{200, 120},
		{1000, 120},
	}

	for _, tc := range testCases {
		var room Room
		room.SetTimeLimit(tc.input)
		assert.Equal(t, tc.expected, room.TimeLimitMinutes, "input %d", tc.input)
	}
}

func TestSetItemTypesFallsBackToMovie(t *testing.T) {
	var room Room

	room.SetItemTypes(nil)
	assert.Equal(t, []string{DefaultItemType}, room.ItemTypes)

	room.SetItemTypes([]string{"", "  "})
	assert.Equal(t, []string{DefaultItemType}, room.ItemTypes)

	room.SetItemTypes([]string{"Series", "", "Episode"})
	assert.Equal(t, []string{"Series", "Episode"}, room.ItemTypes)
}

func TestSetSelectedGenresDropsBlanks(t *testing.T) {
	var room Room

	room.SetSelectedGenres([]string{"Drama", "", "  ", "Sci-Fi"})
	assert.Equal(t, []string{"Drama", "Sci-Fi"}, room.SelectedGenres)
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	var room Room
	userID := uuid.New()

	assert.True(t, room.AddMember(userID))
	assert.False(t, room.AddMember(userID))
	assert.Len(t, room.Members, 1)
	assert.True(t, room.HasMember(userID))
	assert.False(t, room.HasMember(uuid.New()))
}
