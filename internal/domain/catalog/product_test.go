package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thb(t *testing.T, amount int64) valueobject.Money {
	t.Helper()
	money, err := valueobject.NewMoney(decimal.NewFromInt(amount), valueobject.THB)
	require.NoError(t, err)
	return money
}

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Ceramic Mug", "ceramic-mug", valueobject.MustNewSKU("MUG-001"), thb(t, 1000))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Ceramic Mug", "ceramic-mug", valueobject.MustNewSKU("MUG-001"), thb(t, 1000))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Ceramic Mug", product.Name)
		assert.Equal(t, "ceramic-mug", product.Slug)
		assert.Equal(t, "MUG-001", product.SKU)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, valueobject.THB, product.Currency)
		assert.Nil(t, product.SalePrice)
		assert.Equal(t, ProductStatusDraft, product.Status)
		assert.Equal(t, 0, product.StockQuantity)
		assert.True(t, product.ManageStock)
		assert.Empty(t, product.CategoryIDs)
		assert.Empty(t, product.Gallery)
		assert.Empty(t, product.Attributes)
		assert.True(t, product.AverageRating.IsZero())
		assert.Equal(t, 0, product.ReviewCount)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Ceramic Mug", "ceramic-mug", valueobject.MustNewSKU("MUG-002"), thb(t, 1000))
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Slug, event.Slug)
	})

	t.Run("trims the name", func(t *testing.T) {
		product, err := NewProduct("  Ceramic Mug  ", "ceramic-mug", valueobject.MustNewSKU("MUG-003"), thb(t, 1000))
		require.NoError(t, err)
		assert.Equal(t, "Ceramic Mug", product.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "ceramic-mug", valueobject.MustNewSKU("MUG-004"), thb(t, 1000))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewProduct("Ceramic Mug", "Ceramic Mug!", valueobject.MustNewSKU("MUG-005"), thb(t, 1000))
		require.Error(t, err)
	})

	t.Run("fails with zero-value sku", func(t *testing.T) {
		_, err := NewProduct("Ceramic Mug", "ceramic-mug", valueobject.SKU{}, thb(t, 1000))
		require.Error(t, err)
	})
}

func TestProductUpdatePrice(t *testing.T) {
	t.Run("sets price without sale price", func(t *testing.T) {
		product := newTestProduct(t)

		err := product.UpdatePrice(thb(t, 1500), nil)
		require.NoError(t, err)

		assert.True(t, product.Price.Equal(decimal.NewFromInt(1500)))
		assert.Nil(t, product.SalePrice)
		assert.False(t, product.IsOnSale())
	})

	t.Run("sets price with valid sale price", func(t *testing.T) {
		product := newTestProduct(t)

		sale := thb(t, 800)
		err := product.UpdatePrice(thb(t, 1000), &sale)
		require.NoError(t, err)

		assert.True(t, product.IsOnSale())
		assert.True(t, product.EffectivePrice().Amount().Equal(decimal.NewFromInt(800)))
	})

	t.Run("fails when sale price exceeds list price", func(t *testing.T) {
		product := newTestProduct(t)

		sale := thb(t, 1200)
		err := product.UpdatePrice(thb(t, 1000), &sale)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sale price cannot exceed")
	})

	t.Run("fails on currency mismatch between price and sale price", func(t *testing.T) {
		product := newTestProduct(t)

		sale, err := valueobject.NewMoney(decimal.NewFromInt(800), valueobject.USD)
		require.NoError(t, err)

		err = product.UpdatePrice(thb(t, 1000), &sale)
		require.Error(t, err)
	})

	t.Run("sale price equal to price is allowed but not a sale", func(t *testing.T) {
		product := newTestProduct(t)

		sale := thb(t, 1000)
		err := product.UpdatePrice(thb(t, 1000), &sale)
		require.NoError(t, err)

		assert.False(t, product.IsOnSale())
		assert.True(t, product.EffectivePrice().Amount().Equal(decimal.NewFromInt(1000)))
	})

	t.Run("publishes ProductPriceChanged event", func(t *testing.T) {
		product := newTestProduct(t)

		err := product.UpdatePrice(thb(t, 1500), nil)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, event.OldPrice.Equal(decimal.NewFromInt(1000)))
		assert.True(t, event.NewPrice.Equal(decimal.NewFromInt(1500)))
	})
}

func TestProductStock(t *testing.T) {
	t.Run("update stock sets absolute quantity", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateStock(25))
		assert.Equal(t, 25, product.StockQuantity)
		assert.True(t, product.IsInStock())
	})

	t.Run("update stock rejects negative quantity", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.UpdateStock(-1))
	})

	t.Run("increase and reduce stock", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateStock(10))
		require.NoError(t, product.IncreaseStock(5))
		assert.Equal(t, 15, product.StockQuantity)

		require.NoError(t, product.ReduceStock(12))
		assert.Equal(t, 3, product.StockQuantity)
	})

	t.Run("reduce stock fails when insufficient", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateStock(3))
		err := product.ReduceStock(5)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 3, product.StockQuantity)
	})

	t.Run("reduce stock is a no-op when stock is unmanaged", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.SetManageStock(false))
		require.NoError(t, product.ReduceStock(999))
		assert.Equal(t, 0, product.StockQuantity)
		assert.True(t, product.IsInStock())
	})

	t.Run("reduce stock rejects non-positive quantity", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateStock(10))
		require.Error(t, product.ReduceStock(0))
		require.Error(t, product.ReduceStock(-3))
	})
}

func TestProductStatus(t *testing.T) {
	t.Run("activate then archive", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())

		require.NoError(t, product.Archive())
		assert.Equal(t, ProductStatusArchived, product.Status)
		assert.False(t, product.IsActive())
	})

	t.Run("any status can be set from any other", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Archive())
		require.NoError(t, product.SetStatus(ProductStatusDraft))
		assert.Equal(t, ProductStatusDraft, product.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.SetStatus(ProductStatus("published")))
	})

	t.Run("setting the same status is a no-op", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.SetStatus(ProductStatusDraft))
		assert.Empty(t, product.GetDomainEvents())
	})

	t.Run("publishes ProductStatusChanged event", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Activate())

		events := product.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*ProductStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, ProductStatusDraft, event.OldStatus)
		assert.Equal(t, ProductStatusActive, event.NewStatus)
	})
}

func TestProductImages(t *testing.T) {
	t.Run("add image deduplicates", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.AddImage("a.jpg"))
		require.NoError(t, product.AddImage("b.jpg"))
		require.NoError(t, product.AddImage("a.jpg"))

		assert.Equal(t, StringList{"a.jpg", "b.jpg"}, product.Gallery)
	})

	t.Run("update images deduplicates the gallery", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateImages("a.jpg", []string{"a.jpg", "b.jpg", "a.jpg", ""}))
		assert.Equal(t, "a.jpg", product.FeaturedImage)
		assert.Equal(t, StringList{"a.jpg", "b.jpg"}, product.Gallery)
	})

	t.Run("removing the featured image falls back to the gallery", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateImages("a.jpg", []string{"a.jpg", "b.jpg"}))
		require.NoError(t, product.RemoveImage("a.jpg"))

		assert.Equal(t, "b.jpg", product.FeaturedImage)
		assert.Equal(t, StringList{"b.jpg"}, product.Gallery)
	})

	t.Run("removing the last image clears the featured image", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateImages("a.jpg", []string{"a.jpg"}))
		require.NoError(t, product.RemoveImage("a.jpg"))

		assert.Empty(t, product.FeaturedImage)
		assert.Empty(t, product.Gallery)
	})
}

func TestProductCategories(t *testing.T) {
	t.Run("add to category is idempotent", func(t *testing.T) {
		product := newTestProduct(t)
		categoryID := uuid.New()

		require.NoError(t, product.AddToCategory(categoryID))
		require.NoError(t, product.AddToCategory(categoryID))

		assert.Len(t, product.CategoryIDs, 1)
		assert.True(t, product.InCategory(categoryID))
	})

	t.Run("assign replaces memberships and deduplicates", func(t *testing.T) {
		product := newTestProduct(t)
		first, second := uuid.New(), uuid.New()

		require.NoError(t, product.AssignToCategories([]uuid.UUID{first, second, first}))
		assert.Equal(t, UUIDList{first, second}, product.CategoryIDs)
	})

	t.Run("remove from category", func(t *testing.T) {
		product := newTestProduct(t)
		first, second := uuid.New(), uuid.New()

		require.NoError(t, product.AssignToCategories([]uuid.UUID{first, second}))
		require.NoError(t, product.RemoveFromCategory(first))

		assert.Equal(t, UUIDList{second}, product.CategoryIDs)
		assert.False(t, product.InCategory(first))
	})
}

func TestProductAttributes(t *testing.T) {
	t.Run("add and remove attributes", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.AddAttribute("color", NewAttributeValue("Red")))
		require.NoError(t, product.AddAttribute("sizes", NewAttributeValues("S", "M", "L")))

		assert.Equal(t, "Red", product.Attributes["color"].First())
		assert.True(t, product.Attributes["sizes"].IsMulti())
		assert.Equal(t, []string{"S", "M", "L"}, product.Attributes["sizes"].Values())

		require.NoError(t, product.RemoveAttribute("color"))
		assert.NotContains(t, product.Attributes, "color")
	})

	t.Run("rejects empty attribute key", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.AddAttribute("  ", NewAttributeValue("x")))
	})
}

func TestProductRating(t *testing.T) {
	t.Run("accepts ratings in range", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateRating(decimal.NewFromFloat(4.5), 12))
		assert.True(t, product.AverageRating.Equal(decimal.NewFromFloat(4.5)))
		assert.Equal(t, 12, product.ReviewCount)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.UpdateRating(decimal.NewFromFloat(5.1), 1))
		require.Error(t, product.UpdateRating(decimal.NewFromFloat(-0.1), 1))
	})

	t.Run("rejects negative review count", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.UpdateRating(decimal.NewFromInt(4), -1))
	})
}

func TestProductMeasurements(t *testing.T) {
	t.Run("weight round-trips through the aggregate", func(t *testing.T) {
		product := newTestProduct(t)

		weight := valueobject.MustNewWeight(decimal.NewFromFloat(1.5), valueobject.Kilogram)
		require.NoError(t, product.UpdateWeight(&weight))

		got, ok := product.WeightMeasure()
		require.True(t, ok)
		assert.True(t, got.Equals(weight))
	})

	t.Run("dimensions round-trip through the aggregate", func(t *testing.T) {
		product := newTestProduct(t)

		dims := valueobject.MustNewDimensions(
			decimal.NewFromInt(30), decimal.NewFromInt(20), decimal.NewFromInt(10),
			valueobject.Centimeter,
		)
		require.NoError(t, product.UpdateDimensions(&dims))

		got, ok := product.DimensionsMeasure()
		require.True(t, ok)
		assert.True(t, got.Volume().Equal(decimal.NewFromInt(6000)))
	})

	t.Run("nil clears the measurement", func(t *testing.T) {
		product := newTestProduct(t)

		weight := valueobject.MustNewWeight(decimal.NewFromInt(500), valueobject.Gram)
		require.NoError(t, product.UpdateWeight(&weight))
		require.NoError(t, product.UpdateWeight(nil))

		_, ok := product.WeightMeasure()
		assert.False(t, ok)
	})
}

func TestProductSoftDelete(t *testing.T) {
	t.Run("delete blocks further mutation", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Delete())
		assert.True(t, product.IsDeleted())
		assert.False(t, product.IsActive())

		err := product.UpdateBasicInfo("New Name", "", "")
		require.ErrorIs(t, err, shared.ErrEntityDeleted)
		err = product.UpdateStock(5)
		require.ErrorIs(t, err, shared.ErrEntityDeleted)
	})

	t.Run("delete twice fails", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Delete())
		require.ErrorIs(t, product.Delete(), shared.ErrAlreadyDeleted)
	})

	t.Run("restore re-enables mutation", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Delete())
		require.NoError(t, product.Restore())
		assert.False(t, product.IsDeleted())

		require.NoError(t, product.UpdateStock(5))
	})

	t.Run("restore without delete fails", func(t *testing.T) {
		product := newTestProduct(t)
		require.ErrorIs(t, product.Restore(), shared.ErrNotDeleted)
	})
}

func TestProductPurchasability(t *testing.T) {
	t.Run("active product with stock can be purchased", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.Activate())
		require.NoError(t, product.UpdateStock(1))
		assert.True(t, product.CanBePurchased())
	})

	t.Run("draft product cannot be purchased", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.UpdateStock(1))
		assert.False(t, product.CanBePurchased())
	})

	t.Run("active product without stock cannot be purchased", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.Activate())
		assert.False(t, product.CanBePurchased())
	})

	t.Run("unmanaged stock is always purchasable when active", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.Activate())
		require.NoError(t, product.SetManageStock(false))
		assert.True(t, product.CanBePurchased())
	})
}

func TestProductValidateForPublication(t *testing.T) {
	t.Run("reports all missing pieces", func(t *testing.T) {
		product := newTestProduct(t)

		issues := product.ValidateForPublication()
		assert.Contains(t, strings.Join(issues, "; "), "description")
		assert.Contains(t, strings.Join(issues, "; "), "category")
		assert.Contains(t, strings.Join(issues, "; "), "images")
	})

	t.Run("empty for a complete product", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.UpdateBasicInfo("Ceramic Mug", "A fine mug.", "Mug"))
		require.NoError(t, product.AddToCategory(uuid.New()))
		require.NoError(t, product.AddImage("mug.jpg"))

		assert.Empty(t, product.ValidateForPublication())
	})

	t.Run("flags a zero price", func(t *testing.T) {
		product := newTestProduct(t)

		zero := valueobject.Zero(valueobject.THB)
		require.NoError(t, product.UpdatePrice(zero, nil))

		issues := product.ValidateForPublication()
		assert.Contains(t, strings.Join(issues, "; "), "price")
	})
}
