package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid returns true for a known product status
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive, ProductStatusArchived:
		return true
	}
	return false
}

// ParseProductStatus parses a status string, case-insensitively
func ParseProductStatus(value string) (ProductStatus, error) {
	status := ProductStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown product status: "+value)
	}
	return status, nil
}

var maxRating = decimal.NewFromInt(5)

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations. Price columns
// are only ever written through validated Money values, so reading them
// back into Money cannot fail.
type Product struct {
	shared.BaseAggregateRoot
	Name             string                    `gorm:"type:varchar(200);not null"`
	Slug             string                    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description      string                    `gorm:"type:text"`
	ShortDescription string                    `gorm:"type:varchar(500)"`
	SKU              string                    `gorm:"type:varchar(50);not null;uniqueIndex;column:sku"`
	Price            decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	SalePrice        *decimal.Decimal          `gorm:"type:decimal(18,2)"`
	Currency         valueobject.Currency      `gorm:"type:varchar(3);not null"`
	StockQuantity    int                       `gorm:"not null;default:0"`
	ManageStock      bool                      `gorm:"not null"`
	Status           ProductStatus             `gorm:"type:varchar(20);not null;default:'draft';index"`
	WeightValue      *decimal.Decimal          `gorm:"type:decimal(12,3)"`
	WeightUnit       valueobject.WeightUnit    `gorm:"type:varchar(10)"`
	Length           *decimal.Decimal          `gorm:"type:decimal(12,3)"`
	Width            *decimal.Decimal          `gorm:"type:decimal(12,3)"`
	Height           *decimal.Decimal          `gorm:"type:decimal(12,3)"`
	DimensionUnit    valueobject.DimensionUnit `gorm:"type:varchar(10)"`
	Attributes       AttributeMap              `gorm:"type:jsonb"`
	FeaturedImage    string                    `gorm:"type:varchar(500)"`
	Gallery          StringList                `gorm:"type:jsonb"`
	CategoryIDs      UUIDList                  `gorm:"type:jsonb;column:category_ids"`
	AverageRating    decimal.Decimal           `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount      int                       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in draft status with empty collections
func NewProduct(name, slug string, sku valueobject.SKU, price valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if sku.IsZero() {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU is required")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		SKU:               sku.Value(),
		Price:             price.Amount(),
		Currency:          price.Currency(),
		ManageStock:       true,
		Status:            ProductStatusDraft,
		Attributes:        AttributeMap{},
		Gallery:           StringList{},
		CategoryIDs:       UUIDList{},
		AverageRating:     decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// ensureMutable rejects mutation of a soft-deleted product
func (p *Product) ensureMutable() error {
	if p.IsDeleted() {
		return shared.ErrEntityDeleted
	}
	return nil
}

// UpdateBasicInfo updates the product's descriptive fields
func (p *Product) UpdateBasicInfo(name, description, shortDescription string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.ShortDescription = shortDescription
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateSlug changes the product's URL slug
// Note: uniqueness across the catalog is checked by the caller
func (p *Product) UpdateSlug(slug string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if err := validateSlug(slug); err != nil {
		return err
	}

	p.Slug = slug
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateSKU changes the product's SKU
// Note: other systems may reference the old SKU, use with caution
func (p *Product) UpdateSKU(sku valueobject.SKU) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if sku.IsZero() {
		return shared.NewDomainError("INVALID_SKU", "SKU is required")
	}

	p.SKU = sku.Value()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdatePrice sets the list price and an optional sale price.
// The sale price must use the same currency and cannot exceed the list price.
func (p *Product) UpdatePrice(price valueobject.Money, salePrice *valueobject.Money) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if salePrice != nil {
		ok, err := salePrice.LessThanOrEqual(price)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError("INVALID_SALE_PRICE", "Sale price cannot exceed the list price")
		}
	}

	oldPrice := p.Price
	oldSalePrice := p.SalePrice

	p.Price = price.Amount()
	p.Currency = price.Currency()
	if salePrice != nil {
		amount := salePrice.Amount()
		p.SalePrice = &amount
	} else {
		p.SalePrice = nil
	}
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, oldSalePrice))

	return nil
}

// ClearSalePrice removes the sale price, restoring the list price
func (p *Product) ClearSalePrice() error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if p.SalePrice == nil {
		return nil
	}

	oldSalePrice := p.SalePrice
	p.SalePrice = nil
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, p.Price, oldSalePrice))

	return nil
}

// UpdateStock sets the absolute stock quantity
func (p *Product) UpdateStock(quantity int) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	oldQuantity := p.StockQuantity
	p.StockQuantity = quantity
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldQuantity))

	return nil
}

// IncreaseStock adds to the stock quantity
func (p *Product) IncreaseStock(quantity int) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_STOCK", "Increase quantity must be positive")
	}

	oldQuantity := p.StockQuantity
	p.StockQuantity += quantity
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldQuantity))

	return nil
}

// ReduceStock subtracts from the stock quantity. When stock management is
// disabled the call succeeds without changing anything.
func (p *Product) ReduceStock(quantity int) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if !p.ManageStock {
		return nil
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_STOCK", "Reduce quantity must be positive")
	}
	if quantity > p.StockQuantity {
		return shared.ErrInsufficientStock
	}

	oldQuantity := p.StockQuantity
	p.StockQuantity -= quantity
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldQuantity))

	return nil
}

// SetManageStock toggles stock management for the product
func (p *Product) SetManageStock(manage bool) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	p.ManageStock = manage
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetStatus assigns a new lifecycle status. Any status can be set from any
// other status; workflow rules live at the application layer.
func (p *Product) SetStatus(status ProductStatus) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown product status: "+string(status))
	}
	if p.Status == status {
		return nil
	}

	oldStatus := p.Status
	p.Status = status
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, status))

	return nil
}

// Activate makes the product visible and purchasable
func (p *Product) Activate() error {
	return p.SetStatus(ProductStatusActive)
}

// Deactivate hides the product without archiving it
func (p *Product) Deactivate() error {
	return p.SetStatus(ProductStatusInactive)
}

// Archive retires the product from the catalog
func (p *Product) Archive() error {
	return p.SetStatus(ProductStatusArchived)
}

// UpdateWeight replaces the product weight; nil clears it
func (p *Product) UpdateWeight(weight *valueobject.Weight) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	if weight == nil {
		p.WeightValue = nil
		p.WeightUnit = ""
	} else {
		value := weight.Value()
		p.WeightValue = &value
		p.WeightUnit = weight.Unit()
	}
	p.Touch()
	p.IncrementVersion()

	return nil
}

// UpdateDimensions replaces the product dimensions; nil clears them
func (p *Product) UpdateDimensions(dims *valueobject.Dimensions) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	if dims == nil {
		p.Length = nil
		p.Width = nil
		p.Height = nil
		p.DimensionUnit = ""
	} else {
		length, width, height := dims.Length(), dims.Width(), dims.Height()
		p.Length = &length
		p.Width = &width
		p.Height = &height
		p.DimensionUnit = dims.Unit()
	}
	p.Touch()
	p.IncrementVersion()

	return nil
}

// UpdateAttributes replaces all custom attributes
func (p *Product) UpdateAttributes(attributes AttributeMap) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	if attributes == nil {
		attributes = AttributeMap{}
	}
	p.Attributes = attributes
	p.Touch()
	p.IncrementVersion()

	return nil
}

// AddAttribute sets a single attribute, overwriting an existing key
func (p *Product) AddAttribute(key string, value AttributeValue) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute key cannot be empty")
	}

	if p.Attributes == nil {
		p.Attributes = AttributeMap{}
	}
	p.Attributes[key] = value
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RemoveAttribute deletes an attribute by key; missing keys are ignored
func (p *Product) RemoveAttribute(key string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	delete(p.Attributes, key)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// UpdateImages replaces the featured image and the gallery. Duplicate
// gallery entries are dropped, keeping first occurrence order.
func (p *Product) UpdateImages(featuredImage string, gallery []string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	p.FeaturedImage = featuredImage
	p.Gallery = dedupeStrings(gallery)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetFeaturedImage sets the featured image URL
func (p *Product) SetFeaturedImage(url string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	p.FeaturedImage = url
	p.Touch()
	p.IncrementVersion()

	return nil
}

// AddImage appends an image to the gallery, ignoring duplicates
func (p *Product) AddImage(url string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if url == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}

	if p.Gallery.Contains(url) {
		return nil
	}
	p.Gallery = append(p.Gallery, url)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RemoveImage removes an image from the gallery. Removing the featured
// image falls back to the first remaining gallery entry, or clears it.
func (p *Product) RemoveImage(url string) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	gallery := make(StringList, 0, len(p.Gallery))
	for _, img := range p.Gallery {
		if img != url {
			gallery = append(gallery, img)
		}
	}
	p.Gallery = gallery

	if p.FeaturedImage == url {
		if len(p.Gallery) > 0 {
			p.FeaturedImage = p.Gallery[0]
		} else {
			p.FeaturedImage = ""
		}
	}
	p.Touch()
	p.IncrementVersion()

	return nil
}

// AssignToCategories replaces the category memberships. Duplicate IDs are
// dropped, keeping first occurrence order.
func (p *Product) AssignToCategories(categoryIDs []uuid.UUID) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]bool, len(categoryIDs))
	deduped := make(UUIDList, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if !seen[id] {
			seen[id] = true
			deduped = append(deduped, id)
		}
	}
	p.CategoryIDs = deduped
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// AddToCategory adds a category membership; adding twice is a no-op
func (p *Product) AddToCategory(categoryID uuid.UUID) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	if p.CategoryIDs.Contains(categoryID) {
		return nil
	}
	p.CategoryIDs = append(p.CategoryIDs, categoryID)
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// RemoveFromCategory removes a category membership; missing IDs are ignored
func (p *Product) RemoveFromCategory(categoryID uuid.UUID) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}

	ids := make(UUIDList, 0, len(p.CategoryIDs))
	for _, id := range p.CategoryIDs {
		if id != categoryID {
			ids = append(ids, id)
		}
	}
	p.CategoryIDs = ids
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateRating sets the aggregated review rating
func (p *Product) UpdateRating(average decimal.Decimal, count int) error {
	if err := p.ensureMutable(); err != nil {
		return err
	}
	if average.IsNegative() || average.GreaterThan(maxRating) {
		return shared.NewDomainError("INVALID_RATING", "Average rating must be between 0 and 5")
	}
	if count < 0 {
		return shared.NewDomainError("INVALID_RATING", "Review count cannot be negative")
	}

	p.AverageRating = average
	p.ReviewCount = count
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Delete soft-deletes the product
func (p *Product) Delete() error {
	if err := p.MarkDeleted(); err != nil {
		return err
	}

	p.AddDomainEvent(NewProductDeletedEvent(p))

	return nil
}

// Restore clears the soft-deletion mark
func (p *Product) Restore() error {
	if err := p.ClearDeleted(); err != nil {
		return err
	}

	p.AddDomainEvent(NewProductRestoredEvent(p))

	return nil
}

// PriceMoney returns the list price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.MustNewMoney(p.Price, p.Currency)
}

// SalePriceMoney returns the sale price, false if not set
func (p *Product) SalePriceMoney() (valueobject.Money, bool) {
	if p.SalePrice == nil {
		return valueobject.Money{}, false
	}
	return valueobject.MustNewMoney(*p.SalePrice, p.Currency), true
}

// WeightMeasure returns the weight value object, false if not set
func (p *Product) WeightMeasure() (valueobject.Weight, bool) {
	if p.WeightValue == nil {
		return valueobject.Weight{}, false
	}
	weight, err := valueobject.NewWeight(*p.WeightValue, p.WeightUnit)
	if err != nil {
		return valueobject.Weight{}, false
	}
	return weight, true
}

// DimensionsMeasure returns the dimensions value object, false if not set
func (p *Product) DimensionsMeasure() (valueobject.Dimensions, bool) {
	if p.Length == nil || p.Width == nil || p.Height == nil {
		return valueobject.Dimensions{}, false
	}
	dims, err := valueobject.NewDimensions(*p.Length, *p.Width, *p.Height, p.DimensionUnit)
	if err != nil {
		return valueobject.Dimensions{}, false
	}
	return dims, true
}

// IsActive returns true when the product is active and not soft-deleted
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive && !p.IsDeleted()
}

// IsInStock returns true when stock is available. Products without stock
// management are always considered in stock.
func (p *Product) IsInStock() bool {
	if !p.ManageStock {
		return true
	}
	return p.StockQuantity > 0
}

// IsOnSale returns true when a sale price is set below the list price
func (p *Product) IsOnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.Price)
}

// EffectivePrice returns the sale price when on sale, otherwise the list price
func (p *Product) EffectivePrice() valueobject.Money {
	if p.IsOnSale() {
		return valueobject.MustNewMoney(*p.SalePrice, p.Currency)
	}
	return p.PriceMoney()
}

// CanBePurchased returns true when the product is active and in stock
func (p *Product) CanBePurchased() bool {
	return p.IsActive() && p.IsInStock()
}

// InCategory reports whether the product belongs to the given category
func (p *Product) InCategory(categoryID uuid.UUID) bool {
	return p.CategoryIDs.Contains(categoryID)
}

// ValidateForPublication returns the list of issues that would make the
// product unsuitable for publishing. It is advisory: an empty result means
// ready, a non-empty result is a checklist, not an error.
func (p *Product) ValidateForPublication() []string {
	var issues []string
	if strings.TrimSpace(p.Name) == "" {
		issues = append(issues, "Product name is empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		issues = append(issues, "Product description is empty")
	}
	if !p.Price.IsPositive() {
		issues = append(issues, "Product price must be greater than zero")
	}
	if len(p.CategoryIDs) == 0 {
		issues = append(issues, "Product is not assigned to any category")
	}
	if p.FeaturedImage == "" && len(p.Gallery) == 0 {
		issues = append(issues, "Product has no images")
	}
	return issues
}

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func dedupeStrings(values []string) StringList {
	seen := make(map[string]bool, len(values))
	result := make(StringList, 0, len(values))
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
