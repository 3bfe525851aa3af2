package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategory(t *testing.T, name, slug string) *Category {
	t.Helper()
	category, err := NewCategory(name, slug)
	require.NoError(t, err)
	category.ClearDomainEvents()
	return category
}

func newChildOf(t *testing.T, name, slug string, parent *Category) *Category {
	t.Helper()
	category, err := NewChildCategory(name, slug, parent.ID)
	require.NoError(t, err)
	category.ClearDomainEvents()
	return category
}

func TestNewCategory(t *testing.T) {
	t.Run("creates active root category", func(t *testing.T) {
		category, err := NewCategory("Electronics", "electronics")
		require.NoError(t, err)

		assert.Equal(t, "Electronics", category.Name)
		assert.Equal(t, "electronics", category.Slug)
		assert.True(t, category.IsActive)
		assert.True(t, category.IsRoot())
		assert.Equal(t, 0, category.SortOrder)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Electronics", "electronics")
		require.NoError(t, err)

		events := category.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("child category references its parent", func(t *testing.T) {
		parent := newTestCategory(t, "Electronics", "electronics")
		child, err := NewChildCategory("Phones", "phones", parent.ID)
		require.NoError(t, err)

		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
		assert.False(t, child.IsRoot())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "electronics")
		require.Error(t, err)
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewCategory("Electronics", "Electronics!")
		require.Error(t, err)
	})
}

func TestCategoryMutators(t *testing.T) {
	t.Run("update basic info", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")

		require.NoError(t, category.UpdateBasicInfo("Gadgets", "All gadgets"))
		assert.Equal(t, "Gadgets", category.Name)
		assert.Equal(t, "All gadgets", category.Description)
	})

	t.Run("set parent rejects self-reference", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")

		err := category.SetParent(&category.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own parent")
	})

	t.Run("set parent publishes CategoryMoved event", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")
		parentID := uuid.New()

		require.NoError(t, category.SetParent(&parentID))

		events := category.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*CategoryMovedEvent)
		require.True(t, ok)
		assert.Nil(t, event.OldParentID)
		assert.Equal(t, parentID, *event.NewParentID)
	})

	t.Run("set parent to nil makes the category a root", func(t *testing.T) {
		parent := newTestCategory(t, "Electronics", "electronics")
		child := newChildOf(t, "Phones", "phones", parent)

		require.NoError(t, child.SetParent(nil))
		assert.True(t, child.IsRoot())
	})

	t.Run("activate and deactivate guard current state", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")

		require.Error(t, category.Activate())
		require.NoError(t, category.Deactivate())
		require.Error(t, category.Deactivate())
		require.NoError(t, category.Activate())
	})

	t.Run("sort order rejects negatives", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")

		require.NoError(t, category.SetSortOrder(3))
		assert.Equal(t, 3, category.SortOrder)
		require.Error(t, category.SetSortOrder(-1))
	})

	t.Run("mutation fails after soft delete", func(t *testing.T) {
		category := newTestCategory(t, "Electronics", "electronics")

		require.NoError(t, category.Delete())
		require.ErrorIs(t, category.UpdateBasicInfo("X", ""), shared.ErrEntityDeleted)
		require.ErrorIs(t, category.SetSortOrder(1), shared.ErrEntityDeleted)
		require.ErrorIs(t, category.Delete(), shared.ErrAlreadyDeleted)

		require.NoError(t, category.Restore())
		require.NoError(t, category.UpdateBasicInfo("X", ""))
	})
}

// buildFamily returns root -> (c1 -> c3, c2) plus the flat collection.
func buildFamily(t *testing.T) (root, c1, c2, c3 *Category, all []*Category) {
	t.Helper()
	root = newTestCategory(t, "Root", "root")
	c1 = newChildOf(t, "Clothing", "clothing", root)
	c2 = newChildOf(t, "Shoes", "shoes", root)
	c3 = newChildOf(t, "Shirts", "shirts", c1)
	c1.SortOrder = 0
	c2.SortOrder = 1
	all = []*Category{root, c1, c2, c3}
	return
}

func TestCategoryTraversal(t *testing.T) {
	t.Run("path runs from root to self", func(t *testing.T) {
		root, c1, _, c3, all := buildFamily(t)

		path := c3.GetPath(all)
		require.Len(t, path, 3)
		assert.Equal(t, root.ID, path[0].ID)
		assert.Equal(t, c1.ID, path[1].ID)
		assert.Equal(t, c3.ID, path[2].ID)
	})

	t.Run("path stops at a missing parent", func(t *testing.T) {
		_, c1, _, c3, _ := buildFamily(t)

		// root omitted from the collection
		path := c3.GetPath([]*Category{c1, c3})
		require.Len(t, path, 2)
		assert.Equal(t, c1.ID, path[0].ID)
	})

	t.Run("children are direct and ordered", func(t *testing.T) {
		root, c1, c2, _, all := buildFamily(t)

		children := root.GetChildren(all)
		require.Len(t, children, 2)
		assert.Equal(t, c1.ID, children[0].ID)
		assert.Equal(t, c2.ID, children[1].ID)
	})

	t.Run("children exclude soft-deleted categories", func(t *testing.T) {
		root, c1, c2, _, all := buildFamily(t)

		require.NoError(t, c1.Delete())
		children := root.GetChildren(all)
		require.Len(t, children, 1)
		assert.Equal(t, c2.ID, children[0].ID)
	})

	t.Run("descendants are transitive and never include self", func(t *testing.T) {
		root, c1, c2, c3, all := buildFamily(t)

		descendants := root.GetDescendants(all)
		ids := make([]uuid.UUID, len(descendants))
		for i, d := range descendants {
			ids[i] = d.ID
		}
		assert.ElementsMatch(t, []uuid.UUID{c1.ID, c2.ID, c3.ID}, ids)
		assert.NotContains(t, ids, root.ID)
	})

	t.Run("ancestor and descendant checks are inverses", func(t *testing.T) {
		root, c1, c2, c3, all := buildFamily(t)

		assert.True(t, root.IsAncestorOf(c3, all))
		assert.True(t, c3.IsDescendantOf(root, all))
		assert.True(t, c1.IsAncestorOf(c3, all))
		assert.False(t, c2.IsAncestorOf(c3, all))
		assert.False(t, c3.IsDescendantOf(c2, all))
		assert.False(t, c3.IsAncestorOf(root, all))
	})

	t.Run("level counts distance from root", func(t *testing.T) {
		root, c1, _, c3, all := buildFamily(t)

		assert.Equal(t, 0, root.GetLevel(all))
		assert.Equal(t, 1, c1.GetLevel(all))
		assert.Equal(t, 2, c3.GetLevel(all))
	})
}
