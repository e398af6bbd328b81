package middleware

import "testing"

func TestHasPermission(t *testing.T) {
	user := &AppUser{
		UserID:      1,
		Role:        "user",
		Permissions: []string{"workflow.view", "workflow.update"},
	}

	if !HasPermission(user, "workflow.view") {
		t.Error("expected workflow.view to be granted")
	}
	if HasPermission(user, "workflow.delete") {
		t.Error("expected workflow.delete to be denied")
	}
	if HasPermission(nil, "workflow.view") {
		t.Error("nil user must have no permissions")
	}
}

func TestHasAnyPermission(t *testing.T) {
	user := &AppUser{
		UserID:      1,
		Role:        "user",
		Permissions: []string{"workflow.view"},
	}

	if !HasAnyPermission(user, "workflow.view:all", "workflow.view") {
		t.Error("expected one of the permissions to match")
	}
	if HasAnyPermission(user, "workflow.delete", "workflow.create") {
		t.Error("expected no permission to match")
	}
	if HasAnyPermission(nil, "workflow.view") {
		t.Error("nil user must have no permissions")
	}
}
