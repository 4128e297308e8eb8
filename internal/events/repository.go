package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(event *Event) error
	GetByID(id uuid.UUID) (*Event, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Delete(id uuid.UUID) error
	GetAll(query EventListQuery) ([]Event, int64, error)
	GetUpcomingEvents(limit int) ([]Event, error)
	UpdateSeatMap(id uuid.UUID, payload json.RawMessage, seatTypes json.RawMessage, updatedBy uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update applies the partial update and returns the refreshed row.
func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	result := r.db.Model(&Event{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Event{}).Error
}

func (r *repository) GetAll(query EventListQuery) ([]Event, int64, error) {
	db := applyListFilters(r.db.Model(&Event{}), query)

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	var events []Event
	err := db.Order("date_time ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}

// applyListFilters narrows the listing query. Free-text search matches
// name, description and venue case-insensitively; date bounds are
// inclusive of the whole day on both ends.
func applyListFilters(db *gorm.DB, query EventListQuery) *gorm.DB {
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(venue) LIKE ?",
			term, term, term)
	}
	if query.Venue != "" {
		db = db.Where("LOWER(venue) LIKE ?", "%"+strings.ToLower(query.Venue)+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if from, err := time.Parse("2006-01-02", query.DateFrom); query.DateFrom != "" && err == nil {
		db = db.Where("date_time >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", query.DateTo); query.DateTo != "" && err == nil {
		db = db.Where("date_time < ?", to.Add(24*time.Hour))
	}
	return db
}

func (r *repository) GetUpcomingEvents(limit int) ([]Event, error) {
	var events []Event
	err := r.db.Where("date_time > ? AND status = ?", time.Now(), EventStatusPublished).
		Order("date_time ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// UpdateSeatMap swaps the stored layout and type set in one update. Legacy
// grid dimensions are cleared: once an event goes through the designer it
// never falls back to grid addressing.
func (r *repository) UpdateSeatMap(id uuid.UUID, payload json.RawMessage, seatTypes json.RawMessage, updatedBy uuid.UUID) error {
	return r.db.Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"seat_map":    payload,
			"seat_types":  seatTypes,
			"legacy_rows": 0,
			"legacy_cols": 0,
			"updated_by":  updatedBy,
		}).Error
}
