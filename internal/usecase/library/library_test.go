package usecase_library

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

type fakeDirectory struct {
	lastFilter model.CandidateFilter
	lastSortBy model.SortBy
	lastSkip   int
	lastLimit  int

	page        model.CandidatePage
	collections []model.CollectionInfo
	genres      []string
	hidden      map[uuid.UUID]bool
	err         error
}

func (d *fakeDirectory) QueryCandidates(_ context.Context, filter model.CandidateFilter, sortBy model.SortBy, skip, limit int, _ uuid.UUID) (model.CandidatePage, error) {
	d.lastFilter = filter
	d.lastSortBy = sortBy
	d.lastSkip = skip
	d.lastLimit = limit
	return d.page, d.err
}

func (d *fakeDirectory) Collections(_ context.Context, _ uuid.UUID) ([]model.CollectionInfo, error) {
	return d.collections, d.err
}

func (d *fakeDirectory) Genres(_ context.Context, _ uuid.UUID) ([]string, error) {
	return d.genres, d.err
}

func (d *fakeDirectory) IsVisible(_ context.Context, itemID, _ uuid.UUID) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return !d.hidden[itemID], nil
}

type UsecaseLibraryUnitSuite struct {
	suite.Suite
}

func (s *UsecaseLibraryUnitSuite) TestCandidates(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	registry := storage_registry.New()
	rooms := usecase_room.New(registry)
	directory := &fakeDirectory{}
	usecase := New(registry, directory)

	organizerID := uuid.New()
	maxRating := 12
	collectionID := uuid.New()
	room, err := rooms.Create(ctx, organizerID, usecase_room.CreateRoomSpec{
		Name:                "filter night",
		SortBy:              "CommunityRating",
		SelectedCollections: []uuid.UUID{collectionID},
		SelectedGenres:      []string{"Drama", "Comedy"},
		MaxParentalRating:   &maxRating,
	})
	require.NoError(t, err)

	t.Run("Should pass the room's filter set through", func(t provider.T) {
		_, err := usecase.Candidates(ctx, room.ID, organizerID, 5, 30)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{collectionID}, directory.lastFilter.Collections)
		assert.Equal(t, []string{"Drama", "Comedy"}, directory.lastFilter.Genres)
		assert.Equal(t, []string{model.DefaultItemType}, directory.lastFilter.ItemTypes)
		require.NotNil(t, directory.lastFilter.MaxParentalRating)
		assert.Equal(t, 12, *directory.lastFilter.MaxParentalRating)
		assert.Equal(t, model.SortByCommunityRating, directory.lastSortBy)
		assert.Equal(t, 5, directory.lastSkip)
		assert.Equal(t, 30, directory.lastLimit)
	})

	t.Run("Should normalize paging arguments", func(t provider.T) {
		_, err := usecase.Candidates(ctx, room.ID, organizerID, -3, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, directory.lastSkip)
		assert.Equal(t, DefaultCandidateLimit, directory.lastLimit)

		_, err = usecase.Candidates(ctx, room.ID, organizerID, 0, 500)
		require.NoError(t, err)
		assert.Equal(t, MaxCandidateLimit, directory.lastLimit)
	})

	t.Run("Should fail for a missing room", func(t provider.T) {
		_, err := usecase.Candidates(ctx, uuid.New(), organizerID, 0, 10)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("Should wrap directory failures", func(t provider.T) {
		broken := &fakeDirectory{err: errors.New("connection refused")}
		brokenUsecase := New(registry, broken)

		_, err := brokenUsecase.Candidates(ctx, room.ID, organizerID, 0, 10)
		assert.ErrorIs(t, err, ErrDirectory)
	})
}

func (s *UsecaseLibraryUnitSuite) TestParentalRatings(t provider.T) {
	t.Parallel()

	usecase := New(storage_registry.New(), &fakeDirectory{})

	ratings := usecase.ParentalRatings()
	require.Len(t, ratings, 6)
	assert.Equal(t, 0, ratings[0].Value)
	assert.Equal(t, "Unrated", ratings[0].Name)
	assert.Equal(t, 18, ratings[len(ratings)-1].Value)
}

func (s *UsecaseLibraryUnitSuite) TestCheckAccess(t provider.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t provider.T, directory *fakeDirectory, memberCount int) (*Usecase, uuid.UUID) {
		registry := storage_registry.New()
		rooms := usecase_room.New(registry)
		organizerID := uuid.New()
		room, err := rooms.Create(ctx, organizerID, usecase_room.CreateRoomSpec{Name: "access"})
		require.NoError(t, err)
		for i := 0; i < memberCount; i++ {
			require.NoError(t, rooms.Join(ctx, room.ID, uuid.New()))
		}
		return New(registry, directory), organizerID
	}

	t.Run("Should report no issues for a lone organizer", func(t provider.T) {
		usecase, organizerID := setup(t, &fakeDirectory{}, 0)

		check, err := usecase.CheckAccess(ctx, organizerID, []uuid.UUID{uuid.New()})
		require.NoError(t, err)
		assert.False(t, check.HasAccessIssues)
		assert.Equal(t, "No other members in group", check.Message)
	})

	t.Run("Should report no issues when every member sees every collection", func(t provider.T) {
		usecase, organizerID := setup(t, &fakeDirectory{}, 2)

		check, err := usecase.CheckAccess(ctx, organizerID, []uuid.UUID{uuid.New(), uuid.New()})
		require.NoError(t, err)
		assert.False(t, check.HasAccessIssues)
		assert.Equal(t, "All members have access", check.Message)
	})

	t.Run("Should flag a hidden collection without naming the member", func(t provider.T) {
		hiddenID := uuid.New()
		directory := &fakeDirectory{hidden: map[uuid.UUID]bool{hiddenID: true}}
		usecase, organizerID := setup(t, directory, 2)

		check, err := usecase.CheckAccess(ctx, organizerID, []uuid.UUID{uuid.New(), hiddenID})
		require.NoError(t, err)
		assert.True(t, check.HasAccessIssues)
		assert.Equal(t, "Some group members may not have access to all selected content", check.Message)
	})

	t.Run("Should surface directory failures", func(t provider.T) {
		usecase, organizerID := setup(t, &fakeDirectory{err: errors.New("timeout")}, 1)

		_, err := usecase.CheckAccess(ctx, organizerID, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, ErrDirectory)
	})
}

func TestUsecaseLibraryUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseLibraryUnitSuite))
}
