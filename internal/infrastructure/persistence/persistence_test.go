package persistence

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database and migrates the
// catalog schema. The shared cache keeps GORM's connection pool on the
// same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &catalog.Category{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func newStoredProduct(t *testing.T, name, slug, sku string, amount int64) *catalog.Product {
	t.Helper()

	price, err := valueobject.NewMoney(decimal.NewFromInt(amount), valueobject.THB)
	require.NoError(t, err)
	skuVO, err := valueobject.NewSKU(sku)
	require.NoError(t, err)

	product, err := catalog.NewProduct(name, slug, skuVO, price)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func newStoredCategory(t *testing.T, name, slug string) *catalog.Category {
	t.Helper()

	category, err := catalog.NewCategory(name, slug)
	require.NoError(t, err)
	category.ClearDomainEvents()
	return category
}
