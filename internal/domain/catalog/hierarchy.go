package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryNode is one node of a built category tree
type CategoryNode struct {
	Category     *Category       `json:"category"`
	Children     []*CategoryNode `json:"children"`
	Level        int             `json:"level"`
	HasChildren  bool            `json:"has_children"`
	ProductCount int64           `json:"product_count"`
}

// TreeOptions controls tree construction.
// ProductCounts maps category ID to the number of products directly in
// that category; when CountDescendants is set, each node's count also
// includes every descendant's count. A product in two categories of the
// same subtree is counted once per category, not deduplicated.
type TreeOptions struct {
	RootID           *uuid.UUID
	IncludeInactive  bool
	ProductCounts    map[uuid.UUID]int64
	CountDescendants bool
}

// BuildTree assembles a forest from the supplied category collection.
// Without a RootID the forest starts at the root categories; with one it
// contains the single subtree under that category, its level reset to 0.
// Soft-deleted categories are always excluded, inactive ones unless
// IncludeInactive is set. Siblings are ordered by sort order then name.
func BuildTree(categories []*Category, opts TreeOptions) []*CategoryNode {
	childrenOf := make(map[uuid.UUID][]*Category)
	var roots []*Category

	for _, category := range categories {
		if category.IsDeleted() {
			continue
		}
		if !category.IsActive && !opts.IncludeInactive {
			continue
		}
		if category.ParentID == nil {
			roots = append(roots, category)
		} else {
			childrenOf[*category.ParentID] = append(childrenOf[*category.ParentID], category)
		}
	}

	if opts.RootID != nil {
		root := findByID(categories, *opts.RootID)
		if root == nil || root.IsDeleted() {
			return nil
		}
		if !root.IsActive && !opts.IncludeInactive {
			return nil
		}
		node := buildNode(root, childrenOf, 0, opts, map[uuid.UUID]bool{})
		return []*CategoryNode{node}
	}

	sortSiblings(roots)
	forest := make([]*CategoryNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, buildNode(root, childrenOf, 0, opts, map[uuid.UUID]bool{}))
	}
	return forest
}

func buildNode(category *Category, childrenOf map[uuid.UUID][]*Category, level int, opts TreeOptions, visited map[uuid.UUID]bool) *CategoryNode {
	visited[category.ID] = true

	node := &CategoryNode{
		Category:     category,
		Children:     []*CategoryNode{},
		Level:        level,
		ProductCount: opts.ProductCounts[category.ID],
	}

	children := childrenOf[category.ID]
	sortSiblings(children)
	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		childNode := buildNode(child, childrenOf, level+1, opts, visited)
		node.Children = append(node.Children, childNode)
		if opts.CountDescendants {
			node.ProductCount += childNode.ProductCount
		}
	}
	node.HasChildren = len(node.Children) > 0

	return node
}

// ValidateMove checks the reparenting contract for a category: the new
// parent must exist, must not be soft-deleted, must not be the category
// itself, and must not sit inside the category's own subtree. A nil new
// parent moves the category to the root and is always legal.
func ValidateMove(category *Category, newParentID *uuid.UUID, all []*Category) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == category.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	parent := findByID(all, *newParentID)
	if parent == nil {
		return shared.NewDomainError("PARENT_NOT_FOUND", "Parent category does not exist")
	}
	if parent.IsDeleted() {
		return shared.NewDomainError("PARENT_DELETED", "Parent category has been deleted")
	}

	// Walk the proposed parent's ancestor chain instead of the category's
	// live descendants: soft-deleted intermediates still link the chain, so
	// a live subtree hanging below a deleted node cannot hide a cycle.
	visited := map[uuid.UUID]bool{}
	for ancestor := parent; ancestor != nil && !visited[ancestor.ID]; {
		if ancestor.ID == category.ID {
			return shared.NewDomainError("HIERARCHY_CYCLE", "Cannot move a category into its own subtree")
		}
		visited[ancestor.ID] = true
		if ancestor.ParentID == nil {
			break
		}
		ancestor = findByID(all, *ancestor.ParentID)
	}
	return nil
}

func findByID(categories []*Category, id uuid.UUID) *Category {
	for _, category := range categories {
		if category.ID == id {
			return category
		}
	}
	return nil
}
