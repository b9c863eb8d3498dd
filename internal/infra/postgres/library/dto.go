package infra_postgres_library

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kappucitti/syncvote/internal/model"
)

type itemDB struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	ItemType        string         `db:"item_type"`
	ProductionYear  *int           `db:"production_year"`
	Genres          pq.StringArray `db:"genres"`
	CommunityRating *float64       `db:"community_rating"`
	OfficialRating  *string        `db:"official_rating"`
	ParentalRating  *int           `db:"parental_rating"`
	Overview        *string        `db:"overview"`
	RuntimeMinutes  *int           `db:"runtime_minutes"`
}

func (i *itemDB) toCandidate() model.CandidateItem {
	candidate := model.CandidateItem{
		ID:              i.ID,
		Name:            i.Name,
		Type:            i.ItemType,
		Year:            i.ProductionYear,
		Genres:          []string(i.Genres),
		CommunityRating: i.CommunityRating,
		ParentalRating:  i.ParentalRating,
		RuntimeMinutes:  i.RuntimeMinutes,
	}
	if i.OfficialRating != nil {
		candidate.OfficialRating = *i.OfficialRating
	}
	if i.Overview != nil {
		candidate.Overview = *i.Overview
	}
	return candidate
}

type itemMetaDB struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	ItemType       string    `db:"item_type"`
	ProductionYear *int      `db:"production_year"`
}

func (i *itemMetaDB) toDomain() model.ItemMeta {
	return model.ItemMeta{
		ID:   i.ID,
		Name: i.Name,
		Type: i.ItemType,
		Year: i.ProductionYear,
	}
}

type collectionDB struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	CollectionType string    `db:"collection_type"`
	ItemCount      int       `db:"item_count"`
}

func (c *collectionDB) toDomain() model.CollectionInfo {
	return model.CollectionInfo{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.CollectionType,
		ItemCount: c.ItemCount,
	}
}
