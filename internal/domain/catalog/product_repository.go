package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Lookups exclude soft-deleted products unless the filter says otherwise;
// a missing product is reported as shared.ErrNotFound.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products assigned to a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products in a given lifecycle status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// PermanentlyDelete removes a product row entirely, soft-deleted or not
	PermanentlyDelete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts non-deleted products assigned to a category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ExistsBySlug checks slug uniqueness, ignoring the excluded ID
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// ExistsBySKU checks SKU uniqueness, ignoring the excluded ID
	ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
}
