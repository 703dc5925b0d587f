package repository

import (
	"context"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

type venueRow struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;size:100;not null"`
	Description string `gorm:"column:description;type:text"`
	Capacity    int    `gorm:"column:capacity"`
	Location    string `gorm:"column:location;size:200"`
	Amenities   string `gorm:"column:amenities;type:text"`
}

func (venueRow) TableName() string { return "venues" }

func toDomainVenue(m venueRow) *domain.Venue {
	return &domain.Venue{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Capacity:    m.Capacity,
		Location:    m.Location,
		Amenities:   m.Amenities,
	}
}

func toVenueRow(v *domain.Venue) venueRow {
	return venueRow{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Capacity:    v.Capacity,
		Location:    v.Location,
		Amenities:   v.Amenities,
	}
}

func (r *VenueRepository) DB() *gorm.DB { return r.db }

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	m := toVenueRow(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVenue(m)
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var m venueRow
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVenue(m), nil
}

func (r *VenueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	var rows []venueRow
	tx := r.db.WithContext(ctx).Order("name").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Venue, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVenue(m))
	}
	return out, nil
}

func (r *VenueRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&venueRow{}).Count(&cnt)
	return cnt, tx.Error
}
