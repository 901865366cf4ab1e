package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/gate"
)

type mockPolicy struct {
	allowAll bool
}

func (p *mockPolicy) Can(_ context.Context, _ string, _ gate.Action, _ any) bool {
	return p.allowAll
}

func TestGate_Authorize(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("allowed", &mockPolicy{allowAll: true})
	g.Register("denied", &mockPolicy{allowAll: false})

	tests := []struct {
		name     string
		user     string
		resource string
		want     error
	}{
		{"no user", "", "allowed", gate.ErrUnauthorized},
		{"no policy", "owner-1", "unknown", gate.ErrNoPolicyDefined},
		{"allowed", "owner-1", "allowed", nil},
		{"denied", "owner-1", "denied", gate.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Authorize(context.Background(), tt.user, gate.ActionView, tt.resource, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Authorize() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGate_Can(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("test", &mockPolicy{allowAll: true})

	if !g.Can(context.Background(), "owner-1", gate.ActionCreate, "test", nil) {
		t.Error("expected Can to return true")
	}
	if !g.Registered("test") || g.Registered("other") {
		t.Error("Registered mismatch")
	}

	g.Register("test", &mockPolicy{allowAll: false})
	if g.Can(context.Background(), "owner-1", gate.ActionCreate, "test", nil) {
		t.Error("expected re-registered policy to deny")
	}
}

// readOnly lets anyone signed in browse a collection but never change it.
type readOnly struct{}

func (readOnly) Can(_ context.Context, _ string, action gate.Action, _ any) bool {
	return action == gate.ActionList || action == gate.ActionView
}

func TestGate_ActionAwarePolicy(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("archive", readOnly{})

	tests := []struct {
		action gate.Action
		want   bool
	}{
		{gate.ActionList, true},
		{gate.ActionView, true},
		{gate.ActionCreate, false},
		{gate.ActionUpdate, false},
		{gate.ActionDelete, false},
	}
	for _, tt := range tests {
		if got := g.Can(context.Background(), "owner-1", tt.action, "archive", nil); got != tt.want {
			t.Errorf("Can(%s) = %v, want %v", tt.action, got, tt.want)
		}
	}
	if err := g.Authorize(context.Background(), "", gate.ActionList, "archive", nil); !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("anonymous list: got %v", err)
	}
}
