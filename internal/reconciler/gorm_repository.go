package reconciler

import (
	"context"
	"errors"
	"strings"

	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var sortOrders = map[SortField]string{
	SortUpdatedAt:   "updated_at DESC",
	SortCreatedAt:   "created_at DESC",
	SortTotalCost:   "total_cost DESC",
	SortDestination: "destination ASC",
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, trip *models.Trip, action models.RevisionAction) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		rev := models.NewTripRevision(trip, action)
		return tx.Create(&rev).Error
	})
}

func (r *GormRepository) Update(ctx context.Context, ownerID uint, id string, action models.RevisionAction, apply func(*models.Trip)) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scoped(tx, ownerID, id).First(&trip).Error; err != nil {
			return notFound(err)
		}

		apply(&trip)

		if err := tx.Save(&trip).Error; err != nil {
			return err
		}
		rev := models.NewTripRevision(&trip, action)
		return tx.Create(&rev).Error
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *GormRepository) Get(ctx context.Context, ownerID uint, id string) (*models.Trip, error) {
	var trip models.Trip
	if err := scoped(r.db.WithContext(ctx), ownerID, id).First(&trip).Error; err != nil {
		return nil, notFound(err)
	}
	return &trip, nil
}

func (r *GormRepository) Delete(ctx context.Context, ownerID uint, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := scoped(tx, ownerID, id).Delete(&models.Trip{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("trip_id = ? AND owner_id = ?", id, ownerID).Delete(&models.TripRevision{}).Error
	})
}

func (r *GormRepository) List(ctx context.Context, ownerID uint, filter ListFilter) ([]models.Trip, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Destination != "" {
		q = q.Where("destination = ?", filter.Destination)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	order, ok := sortOrders[filter.Sort]
	if !ok {
		order = sortOrders[SortUpdatedAt]
	}
	q = q.Order(order).Order("id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// Revisions returns the trip's snapshots, newest first.
func (r *GormRepository) Revisions(ctx context.Context, ownerID uint, id string) ([]models.TripRevision, error) {
	if _, err := r.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}
	var revs []models.TripRevision
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND owner_id = ?", id, ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&revs).Error
	if err != nil {
		return nil, err
	}
	return revs, nil
}

func scoped(db *gorm.DB, ownerID uint, id string) *gorm.DB {
	return db.Where("id = ? AND owner_id = ?", id, ownerID)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
