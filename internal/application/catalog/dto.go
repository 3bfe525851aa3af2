package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// MeasurementRequest carries a weight value with its unit
type MeasurementRequest struct {
	Value decimal.Decimal `json:"value" binding:"required"`
	Unit  string          `json:"unit" binding:"required"`
}

// DimensionsRequest carries box dimensions with their unit
type DimensionsRequest struct {
	Length decimal.Decimal `json:"length" binding:"required"`
	Width  decimal.Decimal `json:"width" binding:"required"`
	Height decimal.Decimal `json:"height" binding:"required"`
	Unit   string          `json:"unit" binding:"required"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name             string               `json:"name" binding:"required,min=1,max=200"`
	Slug             string               `json:"slug" binding:"omitempty,slug,max=200"`
	SKU              string               `json:"sku" binding:"omitempty,min=3,max=50"`
	Description      string               `json:"description" binding:"max=10000"`
	ShortDescription string               `json:"short_description" binding:"max=500"`
	Price            decimal.Decimal      `json:"price" binding:"required"`
	Currency         string               `json:"currency" binding:"omitempty,len=3"`
	SalePrice        *decimal.Decimal     `json:"sale_price"`
	StockQuantity    *int                 `json:"stock_quantity" binding:"omitempty,min=0"`
	ManageStock      *bool                `json:"manage_stock"`
	Weight           *MeasurementRequest  `json:"weight"`
	Dimensions       *DimensionsRequest   `json:"dimensions"`
	Attributes       catalog.AttributeMap `json:"attributes"`
	FeaturedImage    string               `json:"featured_image" binding:"max=500"`
	Gallery          []string             `json:"gallery"`
	CategoryIDs      []uuid.UUID          `json:"category_ids"`
}

// UpdateProductRequest represents a partial update of a product.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name             *string               `json:"name" binding:"omitempty,min=1,max=200"`
	Slug             *string               `json:"slug" binding:"omitempty,slug,max=200"`
	SKU              *string               `json:"sku" binding:"omitempty,min=3,max=50"`
	Description      *string               `json:"description" binding:"omitempty,max=10000"`
	ShortDescription *string               `json:"short_description" binding:"omitempty,max=500"`
	Price            *decimal.Decimal      `json:"price"`
	SalePrice        *decimal.Decimal      `json:"sale_price"`
	ClearSalePrice   bool                  `json:"clear_sale_price"`
	Weight           *MeasurementRequest   `json:"weight"`
	Dimensions       *DimensionsRequest    `json:"dimensions"`
	Attributes       *catalog.AttributeMap `json:"attributes"`
	FeaturedImage    *string               `json:"featured_image" binding:"omitempty,max=500"`
	Gallery          *[]string             `json:"gallery"`
	CategoryIDs      *[]uuid.UUID          `json:"category_ids"`
}

// Stock adjustment operations
const (
	StockOpSet      = "set"
	StockOpIncrease = "increase"
	StockOpReduce   = "reduce"
)

// AdjustStockRequest represents a stock mutation
type AdjustStockRequest struct {
	Operation string `json:"operation" binding:"required,oneof=set increase reduce"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}

// ChangeStatusRequest represents a lifecycle status change
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active inactive archived"`
}

// UpdateRatingRequest replaces the aggregated review rating
type UpdateRatingRequest struct {
	AverageRating decimal.Decimal `json:"average_rating"`
	ReviewCount   int             `json:"review_count" binding:"min=0"`
}

// ProductListFilter represents filter options for product listing
type ProductListFilter struct {
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,oneof=draft active inactive archived"`
	CategoryID     *uuid.UUID `form:"category_id"`
	MinPrice       *float64   `form:"min_price"`
	MaxPrice       *float64   `form:"max_price"`
	InStock        *bool      `form:"in_stock"`
	IncludeDeleted bool       `form:"include_deleted"`
	Offset         int        `form:"offset" binding:"min=0"`
	Limit          int        `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy         string     `form:"sort_by"`
	SortDir        string     `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Slug              string               `json:"slug"`
	SKU               string               `json:"sku"`
	Description       string               `json:"description"`
	ShortDescription  string               `json:"short_description"`
	Price             decimal.Decimal      `json:"price"`
	SalePrice         *decimal.Decimal     `json:"sale_price,omitempty"`
	EffectivePrice    decimal.Decimal      `json:"effective_price"`
	DisplayPrice      string               `json:"display_price"`
	Currency          string               `json:"currency"`
	OnSale            bool                 `json:"on_sale"`
	StockQuantity     int                  `json:"stock_quantity"`
	ManageStock       bool                 `json:"manage_stock"`
	InStock           bool                 `json:"in_stock"`
	Status            string               `json:"status"`
	Purchasable       bool                 `json:"purchasable"`
	Weight            *MeasurementRequest  `json:"weight,omitempty"`
	Dimensions        *DimensionsRequest   `json:"dimensions,omitempty"`
	ShippingWeight    string               `json:"shipping_weight_class,omitempty"`
	ShippingSize      string               `json:"shipping_size_class,omitempty"`
	Attributes        catalog.AttributeMap `json:"attributes"`
	FeaturedImage     string               `json:"featured_image,omitempty"`
	Gallery           []string             `json:"gallery"`
	CategoryIDs       []uuid.UUID          `json:"category_ids"`
	AverageRating     decimal.Decimal      `json:"average_rating"`
	ReviewCount       int                  `json:"review_count"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         *time.Time           `json:"deleted_at,omitempty"`
	Version           int                  `json:"version"`
}

// ProductListItem represents a lean product row for list responses
type ProductListItem struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	SKU            string          `json:"sku"`
	Price          decimal.Decimal `json:"price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Currency       string          `json:"currency"`
	OnSale         bool            `json:"on_sale"`
	Status         string          `json:"status"`
	InStock        bool            `json:"in_stock"`
	FeaturedImage  string          `json:"featured_image,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PublicationCheckResponse is the advisory pre-publish checklist result
type PublicationCheckResponse struct {
	Ready  bool     `json:"ready"`
	Issues []string `json:"issues"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	response := ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		EffectivePrice:   p.EffectivePrice().Amount(),
		DisplayPrice:     p.EffectivePrice().Format(),
		Currency:         string(p.Currency),
		OnSale:           p.IsOnSale(),
		StockQuantity:    p.StockQuantity,
		ManageStock:      p.ManageStock,
		InStock:          p.IsInStock(),
		Status:           string(p.Status),
		Purchasable:      p.CanBePurchased(),
		Attributes:       p.Attributes,
		FeaturedImage:    p.FeaturedImage,
		Gallery:          p.Gallery,
		CategoryIDs:      p.CategoryIDs,
		AverageRating:    p.AverageRating,
		ReviewCount:      p.ReviewCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		DeletedAt:        p.GetDeletedAt(),
		Version:          p.Version,
	}
	if weight, ok := p.WeightMeasure(); ok {
		response.Weight = &MeasurementRequest{Value: weight.Value(), Unit: string(weight.Unit())}
		response.ShippingWeight = string(weight.ShippingClass())
	}
	if dims, ok := p.DimensionsMeasure(); ok {
		response.Dimensions = &DimensionsRequest{
			Length: dims.Length(), Width: dims.Width(), Height: dims.Height(),
			Unit: string(dims.Unit()),
		}
		response.ShippingSize = string(dims.ShippingClass())
	}
	return response
}

// ToProductListItem converts a domain Product to a list row
func ToProductListItem(p *catalog.Product) ProductListItem {
	return ProductListItem{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		SKU:            p.SKU,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice().Amount(),
		Currency:       string(p.Currency),
		OnSale:         p.IsOnSale(),
		Status:         string(p.Status),
		InStock:        p.IsInStock(),
		FeaturedImage:  p.FeaturedImage,
		CreatedAt:      p.CreatedAt,
	}
}

// ToProductListItems converts a slice of domain Products to list rows
func ToProductListItems(products []catalog.Product) []ProductListItem {
	items := make([]ProductListItem, len(products))
	for i := range products {
		items[i] = ToProductListItem(&products[i])
	}
	return items
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"omitempty,slug,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ImageURL    string     `json:"image_url" binding:"max=500"`
	SortOrder   *int       `json:"sort_order" binding:"omitempty,min=0"`
}

// UpdateCategoryRequest represents a partial update of a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,slug,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=500"`
	SortOrder   *int    `json:"sort_order" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}

// MoveCategoryRequest reparents a category; a nil parent moves it to the root
type MoveCategoryRequest struct {
	NewParentID *uuid.UUID `json:"new_parent_id"`
}

// ReorderCategoriesRequest persists a new sibling order
type ReorderCategoriesRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
}

// CategoryListFilter represents filter options for category listing
type CategoryListFilter struct {
	Search         string `form:"search"`
	OnlyActive     bool   `form:"only_active"`
	OnlyRoots      bool   `form:"only_roots"`
	IncludeDeleted bool   `form:"include_deleted"`
	Offset         int    `form:"offset" binding:"min=0"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy         string `form:"sort_by"`
	SortDir        string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// TreeFilter controls category tree construction
type TreeFilter struct {
	RootID           *uuid.UUID `form:"root_id"`
	IncludeInactive  bool       `form:"include_inactive"`
	WithCounts       bool       `form:"with_counts"`
	CountDescendants bool       `form:"count_descendants"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Version     int        `json:"version"`
}

// CategoryTreeNode is one node of the category tree response
type CategoryTreeNode struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	ImageURL     string             `json:"image_url,omitempty"`
	Level        int                `json:"level"`
	HasChildren  bool               `json:"has_children"`
	ProductCount int64              `json:"product_count"`
	Children     []CategoryTreeNode `json:"children"`
}

// BreadcrumbItem is one step of a category breadcrumb trail
type BreadcrumbItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.GetDeletedAt(),
		Version:     c.Version,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToCategoryTreeNodes converts domain tree nodes into the response shape
func ToCategoryTreeNodes(nodes []*catalog.CategoryNode) []CategoryTreeNode {
	result := make([]CategoryTreeNode, len(nodes))
	for i, node := range nodes {
		result[i] = CategoryTreeNode{
			ID:           node.Category.ID,
			Name:         node.Category.Name,
			Slug:         node.Category.Slug,
			ImageURL:     node.Category.ImageURL,
			Level:        node.Level,
			HasChildren:  node.HasChildren,
			ProductCount: node.ProductCount,
			Children:     ToCategoryTreeNodes(node.Children),
		}
	}
	return result
}

// ToBreadcrumb converts a category path into breadcrumb items
func ToBreadcrumb(path []*catalog.Category) []BreadcrumbItem {
	items := make([]BreadcrumbItem, len(path))
	for i, category := range path {
		items[i] = BreadcrumbItem{ID: category.ID, Name: category.Name, Slug: category.Slug}
	}
	return items
}
