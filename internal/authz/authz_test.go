package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		allowedRoles []string
		want         bool
	}{
		{
			name:         "admin on admin-only operation",
			role:         models.RoleAdmin,
			allowedRoles: []string{models.RoleAdmin},
			want:         true,
		},
		{
			name:         "user on admin-only operation",
			role:         models.RoleUser,
			allowedRoles: []string{models.RoleAdmin},
			want:         false,
		},
		{
			name:         "user on user-only operation",
			role:         models.RoleUser,
			allowedRoles: []string{models.RoleUser},
			want:         true,
		},
		{
			name:         "admin on user-only operation",
			role:         models.RoleAdmin,
			allowedRoles: []string{models.RoleUser},
			want:         false,
		},
		{
			name:         "role in multi-role set",
			role:         models.RoleUser,
			allowedRoles: []string{models.RoleAdmin, models.RoleUser},
			want:         true,
		},
		{
			name:         "empty allowed set denies everything",
			role:         models.RoleAdmin,
			allowedRoles: nil,
			want:         false,
		},
		{
			name:         "unknown role",
			role:         "superuser",
			allowedRoles: []string{models.RoleAdmin, models.RoleUser},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.allowedRoles...))
		})
	}
}
