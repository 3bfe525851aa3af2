package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Category represents a node in the catalog's category tree.
// A category holds only a parent reference; children are discovered by
// scanning a supplied category collection. This keeps the aggregate free
// of in-memory graph pointers and the cycles they invite.
type Category struct {
	shared.BaseAggregateRoot
	Name        string     `gorm:"type:varchar(100);not null"`
	Slug        string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL    string     `gorm:"type:varchar(500)"`
	IsActive    bool       `gorm:"not null"`
	SortOrder   int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new active root category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		IsActive:          true,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new active category under the given parent
func NewChildCategory(name, slug string, parentID uuid.UUID) (*Category, error) {
	category, err := NewCategory(name, slug)
	if err != nil {
		return nil, err
	}
	category.ParentID = &parentID
	return category, nil
}

func (c *Category) ensureMutable() error {
	if c.IsDeleted() {
		return shared.ErrEntityDeleted
	}
	return nil
}

// UpdateBasicInfo updates the category's name and description
func (c *Category) UpdateBasicInfo(name, description string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// UpdateSlug changes the category's URL slug
// Note: uniqueness across the catalog is checked by the caller
func (c *Category) UpdateSlug(slug string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if err := validateSlug(slug); err != nil {
		return err
	}

	c.Slug = slug
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetParent reparents the category; nil makes it a root. A category can
// never be its own parent. Reparenting into the category's own subtree is
// rejected at the application layer with ValidateMove, which has the full
// collection in hand.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	oldParentID := c.ParentID
	c.ParentID = parentID
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryMovedEvent(c, oldParentID))

	return nil
}

// SetImage sets the category image URL
func (c *Category) SetImage(url string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	c.ImageURL = url
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Activate makes the category visible in the catalog
func (c *Category) Activate() error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.IsActive = true
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryStatusChangedEvent(c, false, true))

	return nil
}

// Deactivate hides the category from the catalog
func (c *Category) Deactivate() error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.IsActive = false
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryStatusChangedEvent(c, true, false))

	return nil
}

// SetSortOrder sets the display position among siblings
func (c *Category) SetSortOrder(order int) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if order < 0 {
		return shared.NewDomainError("INVALID_SORT_ORDER", "Sort order cannot be negative")
	}

	c.SortOrder = order
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Delete soft-deletes the category. Whether it still has live children or
// products is checked by the caller, which has repository access.
func (c *Category) Delete() error {
	if err := c.MarkDeleted(); err != nil {
		return err
	}

	c.AddDomainEvent(NewCategoryDeletedEvent(c))

	return nil
}

// Restore clears the soft-deletion mark
func (c *Category) Restore() error {
	if err := c.ClearDeleted(); err != nil {
		return err
	}

	c.AddDomainEvent(NewCategoryRestoredEvent(c))

	return nil
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// GetPath walks the parent chain upward and returns the path from root to
// this category, inclusive. A parent missing from the collection ends the
// walk without failing, as does a corrupt parent cycle.
func (c *Category) GetPath(all []*Category) []*Category {
	byID := indexByID(all)
	path := []*Category{c}
	visited := map[uuid.UUID]bool{c.ID: true}

	current := c
	for current.ParentID != nil {
		parent, ok := byID[*current.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		path = append([]*Category{parent}, path...)
		current = parent
	}
	return path
}

// GetChildren returns the direct non-deleted children, ordered by sort
// order then name
func (c *Category) GetChildren(all []*Category) []*Category {
	var children []*Category
	for _, candidate := range all {
		if candidate.ParentID != nil && *candidate.ParentID == c.ID && !candidate.IsDeleted() {
			children = append(children, candidate)
		}
	}
	sortSiblings(children)
	return children
}

// GetDescendants returns every category below this one, collected
// depth-first in pre-order. The category itself is never included.
func (c *Category) GetDescendants(all []*Category) []*Category {
	var descendants []*Category
	visited := map[uuid.UUID]bool{c.ID: true}
	c.collectDescendants(all, visited, &descendants)
	return descendants
}

func (c *Category) collectDescendants(all []*Category, visited map[uuid.UUID]bool, out *[]*Category) {
	for _, child := range c.GetChildren(all) {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		*out = append(*out, child)
		child.collectDescendants(all, visited, out)
	}
}

// IsAncestorOf returns true if other sits anywhere below this category
func (c *Category) IsAncestorOf(other *Category, all []*Category) bool {
	if other == nil {
		return false
	}
	for _, descendant := range c.GetDescendants(all) {
		if descendant.ID == other.ID {
			return true
		}
	}
	return false
}

// IsDescendantOf returns true if this category sits anywhere below other
func (c *Category) IsDescendantOf(other *Category, all []*Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c, all)
}

// GetLevel returns the distance from the root; a root category is level 0
func (c *Category) GetLevel(all []*Category) int {
	return len(c.GetPath(all)) - 1
}

func indexByID(all []*Category) map[uuid.UUID]*Category {
	byID := make(map[uuid.UUID]*Category, len(all))
	for _, category := range all {
		byID[category.ID] = category
	}
	return byID
}

func sortSiblings(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].Name < categories[j].Name
	})
}

func validateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
