package auth_test

import (
	"testing"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	u := &model.User{ID: "u1", Role: model.RoleDoctor, Email: "doctor@entnt.in"}
	tok, err := auth.MakeToken(u, "secret")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := auth.ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("uid: got %q, want u1", claims.UserID)
	}
	if claims.Role != model.RoleDoctor {
		t.Errorf("role: got %q, want Doctor", claims.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	u := &model.User{ID: "u1", Role: model.RoleAdmin}
	tok, err := auth.MakeToken(u, "secret")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if _, err := auth.ParseToken(tok, "other"); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := auth.ParseToken("not.a.token", "secret"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("patient123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name   string
		stored string
		input  string
		want   bool
	}{
		{"plaintext match", "admin123", "admin123", true},
		{"plaintext mismatch", "admin123", "admin124", false},
		{"bcrypt match", hash, "patient123", true},
		{"bcrypt mismatch", hash, "patient124", false},
		{"empty stored", "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.CheckPassword(tt.stored, tt.input); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
