// Package store exposes owner-scoped document collections over interchangeable backends.
//
// A collection holds records of one type. Every call takes an owner id; an empty
// owner addresses the unscoped (global) collection, which is used for accounts.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist for the given owner.
var ErrNotFound = errors.New("store: record not found")

// Record is implemented by every persisted model.
type Record interface {
	GetID() string
	SetID(id string)
	GetOwnerID() string
	SetOwnerID(owner string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	Touch(now time.Time)
}

// Doc constrains a type parameter to a pointer to T implementing Record.
type Doc[T any] interface {
	*T
	Record
}

// Filter is an equality condition on a stored field.
type Filter struct {
	Field string
	Value any
}

// Query describes ordering, limiting and equality filtering for List.
// Field names are the snake_case column/field names shared by both backends.
type Query struct {
	Where   []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Collection is the document-store contract consumed by services and handlers.
type Collection[T any] interface {
	// Get returns the record or ErrNotFound.
	Get(ctx context.Context, owner, id string) (*T, error)
	// List returns the owner's records matching q.
	List(ctx context.Context, owner string, q Query) ([]T, error)
	// Save creates or fully replaces rec. An empty id is generated.
	Save(ctx context.Context, owner string, rec *T) error
	// Update merges fields into an existing record and bumps updated_at.
	Update(ctx context.Context, owner, id string, fields map[string]any) error
	// Delete removes the record permanently.
	Delete(ctx context.Context, owner, id string) error
}

// Names of the collections, used as Firestore collection ids.
const (
	CollectionInvoices     = "invoices"
	CollectionPortfolio    = "portfolio"
	CollectionTestimonials = "testimonials"
	CollectionServices     = "services"
	CollectionTimeline     = "timeline"
	CollectionTools        = "tools"
	CollectionMessages     = "messages"
	CollectionProfile      = "profile"
	CollectionAccounts     = "accounts"
)

// clock is overridden by tests that need stable timestamps.
var clock = time.Now

func now() time.Time { return clock().UTC() }
