package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TreeCache caches rendered category trees. Get returns (nil, nil) on a
// cache miss; Invalidate drops every cached tree variant.
type TreeCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

const defaultTreeCacheTTL = 5 * time.Minute

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	treeCache    TreeCache
	treeTTL      time.Duration
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// CategoryServiceOption configures a CategoryService
type CategoryServiceOption func(*CategoryService)

// WithTreeCacheTTL overrides how long rendered category trees stay cached
func WithTreeCacheTTL(ttl time.Duration) CategoryServiceOption {
	return func(s *CategoryService) {
		if ttl > 0 {
			s.treeTTL = ttl
		}
	}
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	treeCache TreeCache,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts ...CategoryServiceOption,
) *CategoryService {
	s := &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		treeCache:    treeCache,
		treeTTL:      defaultTreeCacheTTL,
		publisher:    publisher,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	var category *catalog.Category
	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.IsDeleted() {
			return nil, shared.NewDomainError("PARENT_DELETED", "Parent category has been deleted")
		}
		category, err = catalog.NewChildCategory(req.Name, slug, parent.ID)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(req.Name, slug)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		if err := category.UpdateBasicInfo(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := category.SetImage(req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		if err := category.SetSortOrder(*req.SortOrder); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by its URL slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories with filtering and pagination
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) (shared.Paginated[CategoryResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Limit > 0 {
		domainFilter.Limit = filter.Limit
	}
	domainFilter.Offset = filter.Offset
	if filter.SortBy != "" {
		domainFilter.SortBy = filter.SortBy
	}
	if filter.SortDir != "" {
		domainFilter.SortDir = shared.SortDirection(filter.SortDir)
	}
	domainFilter.Search = filter.Search
	domainFilter.IncludeDeleted = filter.IncludeDeleted
	if filter.OnlyActive {
		domainFilter = domainFilter.WithEquals("is_active", true)
	}
	if filter.OnlyRoots {
		domainFilter = domainFilter.WithEquals("parent_id", nil)
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}

	return shared.NewPaginated(ToCategoryResponses(categories), total, domainFilter), nil
}

// GetChildren lists the direct children of a category, or the roots for nil
func (s *CategoryService) GetChildren(ctx context.Context, parentID *uuid.UUID) ([]CategoryResponse, error) {
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// GetTree builds the category tree, serving it from cache when possible
func (s *CategoryService) GetTree(ctx context.Context, filter TreeFilter) ([]CategoryTreeNode, error) {
	key := treeCacheKey(filter)
	if s.treeCache != nil {
		if cached, err := s.treeCache.Get(ctx, key); err != nil {
			s.logger.Warn("category tree cache read failed", zap.Error(err))
		} else if cached != nil {
			var nodes []CategoryTreeNode
			if err := json.Unmarshal(cached, &nodes); err == nil {
				return nodes, nil
			}
			s.logger.Warn("category tree cache entry corrupt, rebuilding", zap.String("key", key))
		}
	}

	snapshot, err := s.categoryRepo.Snapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	opts := catalog.TreeOptions{
		RootID:           filter.RootID,
		IncludeInactive:  filter.IncludeInactive,
		CountDescendants: filter.CountDescendants,
	}
	if filter.WithCounts {
		counts, err := s.categoryRepo.ProductCounts(ctx)
		if err != nil {
			return nil, err
		}
		opts.ProductCounts = counts
	}

	nodes := ToCategoryTreeNodes(catalog.BuildTree(snapshot, opts))

	if s.treeCache != nil {
		if data, err := json.Marshal(nodes); err == nil {
			if err := s.treeCache.Set(ctx, key, data, s.treeTTL); err != nil {
				s.logger.Warn("category tree cache write failed", zap.Error(err))
			}
		}
	}
	return nodes, nil
}

// GetBreadcrumb returns the root-to-category trail for navigation
func (s *CategoryService) GetBreadcrumb(ctx context.Context, id uuid.UUID) ([]BreadcrumbItem, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.categoryRepo.Snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	return ToBreadcrumb(category.GetPath(snapshot)), nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := category.Name
		description := category.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := category.UpdateBasicInfo(name, description); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		exists, err := s.categoryRepo.ExistsBySlug(ctx, *req.Slug, category.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
		}
		if err := category.UpdateSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil {
		if err := category.SetImage(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		if err := category.SetSortOrder(*req.SortOrder); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && *req.IsActive != category.IsActive {
		if *req.IsActive {
			err = category.Activate()
		} else {
			err = category.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Move reparents a category after checking the cycle-safety contract
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.categoryRepo.Snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	if err := catalog.ValidateMove(category, req.NewParentID, snapshot); err != nil {
		return nil, err
	}
	if err := category.SetParent(req.NewParentID); err != nil {
		return nil, err
	}

	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Reorder persists a new sort order for the given categories
func (s *CategoryService) Reorder(ctx context.Context, req ReorderCategoriesRequest) error {
	if err := s.categoryRepo.Reorder(ctx, req.OrderedIDs); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

// Delete soft-deletes a category. It is rejected while the category still
// has live children or assigned products.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN", "Cannot delete a category that still has subcategories")
	}

	productCount, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("CATEGORY_HAS_PRODUCTS", "Cannot delete a category that still has products")
	}

	if err := category.Delete(); err != nil {
		return err
	}
	return s.save(ctx, category)
}

// Restore clears a category's soft-deletion mark
func (s *CategoryService) Restore(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Restore(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// PermanentlyDelete removes a category entirely
func (s *CategoryService) PermanentlyDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.PermanentlyDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

// save persists the aggregate, publishes its events, and drops cached trees
func (s *CategoryService) save(ctx context.Context, category *catalog.Category) error {
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, category.GetDomainEvents()...); err != nil {
			return err
		}
	}
	category.ClearDomainEvents()
	s.invalidateTree(ctx)
	return nil
}

func (s *CategoryService) invalidateTree(ctx context.Context) {
	if s.treeCache == nil {
		return
	}
	if err := s.treeCache.Invalidate(ctx); err != nil {
		s.logger.Warn("category tree cache invalidation failed", zap.Error(err))
	}
}

func treeCacheKey(filter TreeFilter) string {
	root := "all"
	if filter.RootID != nil {
		root = filter.RootID.String()
	}
	return fmt.Sprintf("catalog:tree:%s:%t:%t:%t",
		root, filter.IncludeInactive, filter.WithCounts, filter.CountDescendants)
}
