package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID, with managers loaded
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	var warehouse partner.Warehouse
	if err := r.db.WithContext(ctx).
		Preload("Managers").
		First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindByCode finds a warehouse by its code
func (r *GormWarehouseRepository) FindByCode(ctx context.Context, code string) (*partner.Warehouse, error) {
	var warehouse partner.Warehouse
	if err := r.db.WithContext(ctx).
		Preload("Managers").
		Where("code = ?", strings.ToUpper(code)).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll finds all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	var warehouses []partner.Warehouse
	query := r.applyConditions(r.db.WithContext(ctx).Model(&partner.Warehouse{}), filter)
	query = orderedBy(query, filter, WarehouseSortFields, "created_at")
	query = paginate(query, filter)

	if err := query.Preload("Managers").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// FindManagedBy finds all warehouses managed by the given user
func (r *GormWarehouseRepository) FindManagedBy(ctx context.Context, userID uuid.UUID) ([]partner.Warehouse, error) {
	var warehouses []partner.Warehouse
	if err := r.db.WithContext(ctx).
		Preload("Managers").
		Joins("JOIN warehouse_managers ON warehouse_managers.warehouse_id = warehouses.id").
		Where("warehouse_managers.user_id = ?", userID).
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Save creates or updates a warehouse together with its manager set. Manager
// rows removed from the aggregate are deleted, kept rows are left untouched.
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Managers").Save(warehouse).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(warehouse.Managers))
		for _, m := range warehouse.Managers {
			keep = append(keep, m.UserID)
		}

		cleanup := tx.Where("warehouse_id = ?", warehouse.ID)
		if len(keep) > 0 {
			cleanup = cleanup.Where("user_id NOT IN ?", keep)
		}
		if err := cleanup.Delete(&partner.WarehouseManager{}).Error; err != nil {
			return err
		}

		if len(warehouse.Managers) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&warehouse.Managers).Error
	})
}

// Delete deletes a warehouse and its manager assignments
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warehouse_id = ?", id).Delete(&partner.WarehouseManager{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&partner.Warehouse{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts warehouses matching the filter
func (r *GormWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&partner.Warehouse{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a warehouse with the given code exists
func (r *GormWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Warehouse{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormWarehouseRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ partner.WarehouseRepository = (*GormWarehouseRepository)(nil)
