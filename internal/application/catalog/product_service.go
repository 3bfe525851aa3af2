package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	publisher    shared.EventPublisher
	treeCache    TreeCache
	logger       *zap.Logger
}

// ProductServiceOption configures a ProductService
type ProductServiceOption func(*ProductService)

// WithProductTreeCache drops cached category trees whenever a product's
// category membership changes, since tree nodes may carry product counts
func WithProductTreeCache(cache TreeCache) ProductServiceOption {
	return func(s *ProductService) {
		s.treeCache = cache
	}
}

// WithProductLogger sets the logger used for non-fatal cache failures
func WithProductLogger(logger *zap.Logger) ProductServiceOption {
	return func(s *ProductService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	publisher shared.EventPublisher,
	opts ...ProductServiceOption,
) *ProductService {
	s := &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	exists, err := s.productRepo.ExistsBySlug(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	var sku valueobject.SKU
	if req.SKU != "" {
		sku, err = valueobject.NewSKU(req.SKU)
		if err != nil {
			return nil, err
		}
		skuExists, err := s.productRepo.ExistsBySKU(ctx, sku.Value(), uuid.Nil)
		if err != nil {
			return nil, err
		}
		if skuExists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	} else {
		sku = valueobject.GenerateSKU("")
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	price, err := valueobject.NewMoney(req.Price, currency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, slug, sku, price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.ShortDescription != "" {
		if err := product.UpdateBasicInfo(req.Name, req.Description, req.ShortDescription); err != nil {
			return nil, err
		}
	}

	if req.SalePrice != nil {
		sale, err := valueobject.NewMoney(*req.SalePrice, currency)
		if err != nil {
			return nil, err
		}
		if err := product.UpdatePrice(price, &sale); err != nil {
			return nil, err
		}
	}

	if req.ManageStock != nil {
		if err := product.SetManageStock(*req.ManageStock); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.UpdateStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if req.Weight != nil {
		weight, err := valueobject.NewWeight(req.Weight.Value, valueobject.WeightUnit(req.Weight.Unit))
		if err != nil {
			return nil, err
		}
		if err := product.UpdateWeight(&weight); err != nil {
			return nil, err
		}
	}
	if req.Dimensions != nil {
		dims, err := valueobject.NewDimensions(
			req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height,
			valueobject.DimensionUnit(req.Dimensions.Unit),
		)
		if err != nil {
			return nil, err
		}
		if err := product.UpdateDimensions(&dims); err != nil {
			return nil, err
		}
	}

	if len(req.Attributes) > 0 {
		if err := product.UpdateAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if req.FeaturedImage != "" || len(req.Gallery) > 0 {
		if err := product.UpdateImages(req.FeaturedImage, req.Gallery); err != nil {
			return nil, err
		}
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.ensureCategoriesExist(ctx, req.CategoryIDs); err != nil {
			return nil, err
		}
		if err := product.AssignToCategories(req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, product); err != nil {
		return nil, err
	}
	if len(product.CategoryIDs) > 0 {
		s.invalidateCategoryTrees(ctx)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by its URL slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductListItem], error) {
	domainFilter := s.buildFilter(filter)

	var (
		products []catalog.Product
		err      error
	)
	if filter.CategoryID != nil {
		products, err = s.productRepo.FindByCategory(ctx, *filter.CategoryID, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return shared.Paginated[ProductListItem]{}, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ProductListItem]{}, err
	}

	return shared.NewPaginated(ToProductListItems(products), total, domainFilter), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.ShortDescription != nil {
		name := product.Name
		description := product.Description
		shortDescription := product.ShortDescription
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.ShortDescription != nil {
			shortDescription = *req.ShortDescription
		}
		if err := product.UpdateBasicInfo(name, description, shortDescription); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != product.Slug {
		exists, err := s.productRepo.ExistsBySlug(ctx, *req.Slug, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
		}
		if err := product.UpdateSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		sku, err := valueobject.NewSKU(*req.SKU)
		if err != nil {
			return nil, err
		}
		exists, err := s.productRepo.ExistsBySKU(ctx, sku.Value(), product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
		if err := product.UpdateSKU(sku); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.SalePrice != nil || req.ClearSalePrice {
		price := product.PriceMoney()
		if req.Price != nil {
			price, err = valueobject.NewMoney(*req.Price, product.Currency)
			if err != nil {
				return nil, err
			}
		}
		var sale *valueobject.Money
		switch {
		case req.ClearSalePrice:
			sale = nil
		case req.SalePrice != nil:
			saleMoney, err := valueobject.NewMoney(*req.SalePrice, product.Currency)
			if err != nil {
				return nil, err
			}
			sale = &saleMoney
		default:
			if existing, ok := product.SalePriceMoney(); ok {
				sale = &existing
			}
		}
		if err := product.UpdatePrice(price, sale); err != nil {
			return nil, err
		}
	}

	if req.Weight != nil {
		weight, err := valueobject.NewWeight(req.Weight.Value, valueobject.WeightUnit(req.Weight.Unit))
		if err != nil {
			return nil, err
		}
		if err := product.UpdateWeight(&weight); err != nil {
			return nil, err
		}
	}
	if req.Dimensions != nil {
		dims, err := valueobject.NewDimensions(
			req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height,
			valueobject.DimensionUnit(req.Dimensions.Unit),
		)
		if err != nil {
			return nil, err
		}
		if err := product.UpdateDimensions(&dims); err != nil {
			return nil, err
		}
	}

	if req.Attributes != nil {
		if err := product.UpdateAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}

	if req.FeaturedImage != nil || req.Gallery != nil {
		featured := product.FeaturedImage
		gallery := []string(product.Gallery)
		if req.FeaturedImage != nil {
			featured = *req.FeaturedImage
		}
		if req.Gallery != nil {
			gallery = *req.Gallery
		}
		if err := product.UpdateImages(featured, gallery); err != nil {
			return nil, err
		}
	}

	if req.CategoryIDs != nil {
		if err := s.ensureCategoriesExist(ctx, *req.CategoryIDs); err != nil {
			return nil, err
		}
		if err := product.AssignToCategories(*req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, product); err != nil {
		return nil, err
	}
	if req.CategoryIDs != nil {
		s.invalidateCategoryTrees(ctx)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock sets, increases or reduces the stock quantity
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch req.Operation {
	case StockOpSet:
		err = product.UpdateStock(req.Quantity)
	case StockOpIncrease:
		err = product.IncreaseStock(req.Quantity)
	case StockOpReduce:
		err = product.ReduceStock(req.Quantity)
	default:
		err = shared.NewDomainError("INVALID_OPERATION", "Unknown stock operation: "+req.Operation)
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ChangeStatus moves a product to a new lifecycle status
func (s *ProductService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := catalog.ParseProductStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if err := product.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateRating replaces the aggregated review rating
func (s *ProductService) UpdateRating(ctx context.Context, id uuid.UUID, req UpdateRatingRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateRating(req.AverageRating, req.ReviewCount); err != nil {
		return nil, err
	}

	if err := s.save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// CheckPublication runs the advisory pre-publish checklist
func (s *ProductService) CheckPublication(ctx context.Context, id uuid.UUID) (*PublicationCheckResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	issues := product.ValidateForPublication()
	return &PublicationCheckResponse{Ready: len(issues) == 0, Issues: issues}, nil
}

// Delete soft-deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Delete(); err != nil {
		return err
	}
	if err := s.save(ctx, product); err != nil {
		return err
	}
	if len(product.CategoryIDs) > 0 {
		s.invalidateCategoryTrees(ctx)
	}
	return nil
}

// Restore clears a product's soft-deletion mark
func (s *ProductService) Restore(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Restore(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, product); err != nil {
		return nil, err
	}
	if len(product.CategoryIDs) > 0 {
		s.invalidateCategoryTrees(ctx)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// PermanentlyDelete removes a product entirely
func (s *ProductService) PermanentlyDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.PermanentlyDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateCategoryTrees(ctx)
	return nil
}

func (s *ProductService) buildFilter(filter ProductListFilter) shared.Filter {
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

	if filter.Status != "" {
		domainFilter = domainFilter.WithEquals("status", filter.Status)
	}
	if filter.InStock != nil && *filter.InStock {
		domainFilter = domainFilter.WithRange("stock_quantity", 1, nil)
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		var min, max any
		if filter.MinPrice != nil {
			min = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			max = *filter.MaxPrice
		}
		domainFilter = domainFilter.WithRange("price", min, max)
	}
	return domainFilter
}

func (s *ProductService) ensureCategoriesExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	found := make(map[uuid.UUID]bool, len(categories))
	for i := range categories {
		found[categories[i].ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found: "+id.String())
		}
	}
	return nil
}

// save persists the aggregate and publishes its pending domain events
func (s *ProductService) save(ctx context.Context, product *catalog.Product) error {
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, product.GetDomainEvents()...); err != nil {
			return err
		}
	}
	product.ClearDomainEvents()
	return nil
}

// invalidateCategoryTrees drops cached category trees after a membership
// change so per-node product counts are recomputed
func (s *ProductService) invalidateCategoryTrees(ctx context.Context) {
	if s.treeCache == nil {
		return
	}
	if err := s.treeCache.Invalidate(ctx); err != nil {
		s.logger.Warn("category tree cache invalidation failed", zap.Error(err))
	}
}
