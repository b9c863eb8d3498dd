package infra_postgres_library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kappucitti/syncvote/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

// Driver is the postgres-backed item directory. The voting engine treats
// it as a read-only collaborator: nothing here writes.
//
// Visibility is modeled through library_access rows: a user sees an item
// when they have access to the item's collection.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Resolve(ctx context.Context, itemID uuid.UUID) (model.ItemMeta, error) {
	query := `
		SELECT id, name, item_type, production_year
		FROM library_items
		WHERE id = $1
	`

	var item itemMetaDB
	err := d.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ItemMeta{}, ErrItemNotFound
		}
		return model.ItemMeta{}, fmt.Errorf("failed to resolve item: %w", err)
	}

	return item.toDomain(), nil
}

func (d *Driver) QueryCandidates(ctx context.Context, filter model.CandidateFilter, sortBy model.SortBy, skip, limit int, userID uuid.UUID) (model.CandidatePage, error) {
	where := []string{
		"EXISTS (SELECT 1 FROM library_access a WHERE a.collection_id = i.collection_id AND a.user_id = $1)",
	}
	args := []any{userID}

	if len(filter.ItemTypes) > 0 {
		args = append(args, pq.StringArray(filter.ItemTypes))
		where = append(where, fmt.Sprintf("i.item_type = ANY($%d)", len(args)))
	}
	if len(filter.Collections) > 0 {
		args = append(args, pq.StringArray(uuidStrings(filter.Collections)))
		where = append(where, fmt.Sprintf("i.collection_id = ANY($%d::uuid[])", len(args)))
	}
	if len(filter.Genres) > 0 {
		args = append(args, pq.StringArray(filter.Genres))
		where = append(where, fmt.Sprintf("i.genres && $%d", len(args)))
	}
	if filter.MaxParentalRating != nil {
		args = append(args, *filter.MaxParentalRating)
		where = append(where, fmt.Sprintf("(i.parental_rating IS NULL OR i.parental_rating <= $%d)", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM library_items i WHERE %s`, whereClause)
	var total int
	if err := d.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return model.CandidatePage{}, fmt.Errorf("failed to count candidates: %w", err)
	}

	pageArgs := append(args, limit, skip)
	query := fmt.Sprintf(`
		SELECT id, name, item_type, production_year, genres,
		       community_rating, official_rating, parental_rating,
		       overview, runtime_minutes
		FROM library_items i
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause(sortBy), len(args)+1, len(args)+2)

	var items []itemDB
	if err := d.db.SelectContext(ctx, &items, query, pageArgs...); err != nil {
		return model.CandidatePage{}, fmt.Errorf("failed to query candidates: %w", err)
	}

	page := model.CandidatePage{
		Items:      make([]model.CandidateItem, 0, len(items)),
		TotalCount: total,
		StartIndex: skip,
	}
	for i := range items {
		page.Items = append(page.Items, items[i].toCandidate())
	}
	return page, nil
}

func (d *Driver) Collections(ctx context.Context, userID uuid.UUID) ([]model.CollectionInfo, error) {
	query := `
		SELECT c.id, c.name, c.collection_type, COUNT(i.id) AS item_count
		FROM library_collections c
		JOIN library_access a ON a.collection_id = c.id AND a.user_id = $1
		LEFT JOIN library_items i ON i.collection_id = c.id
		GROUP BY c.id, c.name, c.collection_type
		ORDER BY c.name
	`

	var collections []collectionDB
	if err := d.db.SelectContext(ctx, &collections, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}

	result := make([]model.CollectionInfo, 0, len(collections))
	for i := range collections {
		result = append(result, collections[i].toDomain())
	}
	return result, nil
}

func (d *Driver) Genres(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT unnest(i.genres) AS genre
		FROM library_items i
		JOIN library_access a ON a.collection_id = i.collection_id AND a.user_id = $1
		ORDER BY genre
	`

	var genres []string
	if err := d.db.SelectContext(ctx, &genres, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	return genres, nil
}

// IsVisible reports whether userID has access to the given collection.
func (d *Driver) IsVisible(ctx context.Context, collectionID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM library_access
			WHERE collection_id = $1 AND user_id = $2
		)
	`

	var visible bool
	if err := d.db.GetContext(ctx, &visible, query, collectionID, userID); err != nil {
		return false, fmt.Errorf("failed to check visibility: %w", err)
	}
	return visible, nil
}

func orderClause(sortBy model.SortBy) string {
	switch sortBy {
	case model.SortByTitle:
		return "i.name ASC"
	case model.SortByCommunityRating:
		return "i.community_rating DESC NULLS LAST"
	case model.SortByPremiereDate:
		return "i.production_year DESC NULLS LAST"
	default:
		return "random()"
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
