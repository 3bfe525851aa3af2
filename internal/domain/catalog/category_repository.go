package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence.
// Tree-shaped reads (paths, descendants, breadcrumbs) are computed in the
// domain layer over a Snapshot rather than pushed into SQL; the repository
// only answers the flat questions.
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindByIDs finds multiple categories by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindChildren finds the direct children of a category; a nil parent
	// yields the root categories
	FindChildren(ctx context.Context, parentID *uuid.UUID) ([]Category, error)

	// Snapshot loads the full category collection for hierarchy traversal
	Snapshot(ctx context.Context, includeDeleted bool) ([]*Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// PermanentlyDelete removes a category row entirely, soft-deleted or not
	PermanentlyDelete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// HasChildren checks whether a category has live (non-deleted) children
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsBySlug checks slug uniqueness, ignoring the excluded ID
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// ProductCounts returns the number of non-deleted products directly
	// assigned to each category
	ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error)

	// Reorder persists a new sort order for the given sibling categories,
	// positions following slice order
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}
