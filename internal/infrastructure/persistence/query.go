package persistence

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// likeOperator returns the case-insensitive LIKE operator for the dialect.
// SQLite's plain LIKE is already case-insensitive for ASCII.
func likeOperator(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// categoryContainsClause builds a condition matching products whose
// category_ids JSON array contains the given ID. Postgres uses jsonb
// containment; other dialects fall back to a substring match on the
// serialized array.
func categoryContainsClause(db *gorm.DB, categoryID uuid.UUID) (string, any) {
	if db.Dialector.Name() == "postgres" {
		return "category_ids @> ?", fmt.Sprintf(`["%s"]`, categoryID)
	}
	return "category_ids LIKE ?", fmt.Sprintf(`%%"%s"%%`, categoryID)
}
