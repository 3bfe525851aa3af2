package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID. Soft-deleted rows are included so
// they can still be restored.
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindBySlug finds a live category by its URL slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByIDs finds multiple live categories by their IDs
func (r *GormCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Category, error) {
	if len(ids) == 0 {
		return []catalog.Category{}, nil
	}
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren finds the direct live children of a category; a nil parent
// yields the root categories
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID *uuid.UUID) ([]catalog.Category, error) {
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var categories []catalog.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Snapshot loads the full category collection for hierarchy traversal
func (r *GormCategoryRepository) Snapshot(ctx context.Context, includeDeleted bool) ([]*catalog.Category, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var categories []*catalog.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// PermanentlyDelete removes a category row entirely, soft-deleted or not
func (r *GormCategoryRepository) PermanentlyDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasChildren checks whether a category has live children
func (r *GormCategoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("parent_id = ? AND deleted_at IS NULL", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsBySlug checks slug uniqueness among live categories, ignoring the excluded ID
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("slug = ? AND deleted_at IS NULL", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductCounts returns the number of non-deleted products directly assigned
// to each category, unnesting the products' category_ids JSON arrays.
func (r *GormCategoryRepository) ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var sql string
	if r.db.Dialector.Name() == "postgres" {
		sql = `SELECT jsonb_array_elements_text(category_ids) AS category_id, COUNT(*) AS product_count
		       FROM products WHERE deleted_at IS NULL GROUP BY category_id`
	} else {
		sql = `SELECT je.value AS category_id, COUNT(*) AS product_count
		       FROM products, json_each(products.category_ids) AS je
		       WHERE products.deleted_at IS NULL GROUP BY je.value`
	}

	var rows []struct {
		CategoryID   string
		ProductCount int64
	}
	if err := r.db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.CategoryID)
		if err != nil {
			continue
		}
		counts[id] = row.ProductCount
	}
	return counts, nil
}

// Reorder persists a new sort order for the given sibling categories,
// positions following slice order
func (r *GormCategoryRepository) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			result := tx.Model(&catalog.Category{}).
				Where("id = ? AND deleted_at IS NULL", id).
				Update("sort_order", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	sortField := ValidateSortField(filter.SortBy, CategorySortFields, "sort_order")
	sortDir := ValidateSortOrder(string(filter.SortDir))
	query = query.Order(sortField + " " + sortDir)

	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	return query
}

// applyConditions applies filter conditions without ordering or pagination
func (r *GormCategoryRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	if filter.Search != "" {
		like := likeOperator(r.db)
		pattern := "%" + filter.Search + "%"
		query = query.Where("name "+like+" ? OR slug "+like+" ?", pattern, pattern)
	}

	for key, value := range filter.Equals {
		if !CategorySortFields[key] {
			continue
		}
		if value == nil {
			query = query.Where(key + " IS NULL")
		} else {
			query = query.Where(key+" = ?", value)
		}
	}

	for key, rng := range filter.Ranges {
		if !CategorySortFields[key] {
			continue
		}
		if rng.Min != nil {
			query = query.Where(key+" >= ?", rng.Min)
		}
		if rng.Max != nil {
			query = query.Where(key+" <= ?", rng.Max)
		}
	}

	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
