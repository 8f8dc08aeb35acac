package access_test

import (
	"testing"

	"clinic-management-api/internal/access"
	"clinic-management-api/internal/model"
)

func TestDecide(t *testing.T) {
	admin := &model.User{ID: "1", Role: model.RoleAdmin}
	patient := &model.User{ID: "2", Role: model.RolePatient}

	tests := []struct {
		name    string
		user    *model.User
		allowed []model.Role
		want    access.Decision
	}{
		{"no session", nil, []model.Role{model.RoleAdmin}, access.RedirectLogin},
		{"wrong role", patient, []model.Role{model.RoleAdmin, model.RoleDoctor}, access.RedirectNotFound},
		{"allowed", admin, []model.Role{model.RoleAdmin}, access.Allow},
		{"allowed among several", patient, []model.Role{model.RoleAdmin, model.RolePatient}, access.Allow},
		{"empty allow list", admin, nil, access.RedirectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.Decide(tt.user, tt.allowed); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
