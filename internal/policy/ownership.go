package policy

import (
	"context"

	"github.com/mhdyaseenvattappara/yazzfolio/gate"
)

// Ownable is implemented by records that belong to an owner.
// Every model embedding models.Base satisfies it.
type Ownable interface {
	GetUserID() string
}

// OwnershipPolicy allows an action when the owner id matches the resource's owner.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can checks if the owner owns the resource.
// For list/create (resource is nil) it returns true.
func (p *OwnershipPolicy) Can(_ context.Context, ownerID string, _ gate.Action, resource any) bool {
	if resource == nil {
		return true
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		// resources without an owner are never exposed through the gate
		return false
	}
	return ownable.GetUserID() == ownerID
}
