package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// productRow is the minimal slice of the products table this subsystem
// reads. Product CRUD is owned elsewhere; only display fields matter here.
type productRow struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	CategoryName string
}

func (productRow) TableName() string {
	return "products"
}

// GormProductDirectory implements collection.ProductDirectory using GORM
type GormProductDirectory struct {
	db *gorm.DB
}

// NewGormProductDirectory creates a new GormProductDirectory
func NewGormProductDirectory(db *gorm.DB) *GormProductDirectory {
	return &GormProductDirectory{db: db}
}

// Lookup resolves the display fields for a product
func (r *GormProductDirectory) Lookup(ctx context.Context, productID uuid.UUID) (*collection.ProductInfo, error) {
	var row productRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &collection.ProductInfo{
		Name:         row.Name,
		CategoryName: row.CategoryName,
	}, nil
}

// Ensure GormProductDirectory implements collection.ProductDirectory
var _ collection.ProductDirectory = (*GormProductDirectory)(nil)
