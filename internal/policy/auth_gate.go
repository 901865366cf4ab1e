package policy

import (
	"context"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
)

// AuthGate binds the policy registry to the session owner.
type AuthGate struct {
	Gate *gate.Gate[string]
}

func NewAuthGate() *AuthGate {
	return &AuthGate{Gate: gate.NewGate[string]()}
}

// RegisterPolicy adds a policy for a resource type.
func (ag *AuthGate) RegisterPolicy(resourceType string, p gate.Policy[string]) {
	ag.Gate.Register(resourceType, p)
}

// Authorize checks if the current owner can perform an action on a resource.
// Returns nil if authorized, gate.ErrUnauthorized otherwise.
func (ag *AuthGate) Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error {
	ownerID, ok := auth.OwnerIDFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	return ag.Gate.Authorize(ctx, ownerID, action, resourceType, resource)
}

func (ag *AuthGate) Can(ctx context.Context, action gate.Action, resourceType string, resource any) bool {
	return ag.Authorize(ctx, action, resourceType, resource) == nil
}

// RequirePolicy returns middleware rejecting requests for resource types
// that have no registered policy, before any resource is loaded.
func (ag *AuthGate) RequirePolicy(resourceType func(*http.Request) string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ag.Can(r.Context(), action, resourceType(r), nil) {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
