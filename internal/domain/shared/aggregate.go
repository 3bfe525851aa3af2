package shared

import (
	"time"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots.
// DeletedAt implements soft deletion: a set timestamp marks the aggregate
// inactive without removing the row. Mutators must refuse to operate on a
// soft-deleted aggregate.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	DeletedAt    *time.Time    `gorm:"index"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// IsDeleted returns true if the aggregate has been soft-deleted
func (a *BaseAggregateRoot) IsDeleted() bool {
	return a.DeletedAt != nil
}

// GetDeletedAt returns the soft-deletion timestamp, nil if not deleted
func (a *BaseAggregateRoot) GetDeletedAt() *time.Time {
	return a.DeletedAt
}

// MarkDeleted sets the soft-deletion timestamp.
// Returns ErrAlreadyDeleted if the aggregate is already soft-deleted.
func (a *BaseAggregateRoot) MarkDeleted() error {
	if a.DeletedAt != nil {
		return ErrAlreadyDeleted
	}
	now := time.Now()
	a.DeletedAt = &now
	a.UpdatedAt = now
	a.Version++
	return nil
}

// ClearDeleted clears the soft-deletion timestamp.
// Returns ErrNotDeleted if the aggregate is not soft-deleted.
func (a *BaseAggregateRoot) ClearDeleted() error {
	if a.DeletedAt == nil {
		return ErrNotDeleted
	}
	a.DeletedAt = nil
	a.UpdatedAt = time.Now()
	a.Version++
	return nil
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}
