// Package gate decides whether the signed-in owner may act on a record.
//
// Each collection served by the admin API registers one Policy under its name.
// A collection without a policy is closed: requests for it are refused before
// any record is loaded.
package gate

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized means there is no subject or the policy said no.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoPolicyDefined means the collection name is not served.
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

// Action is what a request does to a collection. The admin API maps its
// routes onto these: GET list and item, POST, PUT and DELETE.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Policy answers for one collection. record is nil for list and create,
// which have no record yet.
type Policy[S any] interface {
	Can(ctx context.Context, subject S, action Action, record any) bool
}

// Gate holds the policy of every served collection. S is the subject,
// an owner id here; its zero value means nobody is signed in.
type Gate[S comparable] struct {
	policies map[string]Policy[S]
}

func NewGate[S comparable]() *Gate[S] {
	return &Gate[S]{policies: make(map[string]Policy[S])}
}

// Register sets the policy of a collection, replacing any earlier one.
func (g *Gate[S]) Register(collection string, p Policy[S]) {
	g.policies[collection] = p
}

func (g *Gate[S]) Registered(collection string) bool {
	_, ok := g.policies[collection]
	return ok
}

// Authorize returns nil when subject may perform action, ErrNoPolicyDefined
// for an unserved collection and ErrUnauthorized otherwise.
func (g *Gate[S]) Authorize(ctx context.Context, subject S, action Action, collection string, record any) error {
	var nobody S
	if subject == nobody {
		return ErrUnauthorized
	}
	p, ok := g.policies[collection]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, subject, action, record) {
		return ErrUnauthorized
	}
	return nil
}

func (g *Gate[S]) Can(ctx context.Context, subject S, action Action, collection string, record any) bool {
	return g.Authorize(ctx, subject, action, collection, record) == nil
}
