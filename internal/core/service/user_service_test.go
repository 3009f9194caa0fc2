package service

import (
	"context"
	"errors"
	"testing"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

func TestUserService_CreateAnyRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	u, err := svc.Create(context.Background(), ports.CreateUserInput{Name: "Root", Email: "root@example.com", Password: "changeme", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %q", u.Role)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	u, _ := svc.Create(context.Background(), ports.CreateUserInput{Name: "Hal", Email: "hal@example.com", Password: "changeme"})

	role := "Host"
	updated, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != domain.RoleHost {
		t.Fatalf("expected host, got %q", updated.Role)
	}

	bad := "superuser"
	if _, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Role: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_MissingUserNamesID(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)
	ctx := context.Background()
	name := "Ghost"

	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := svc.Get(ctx, "nobody"); return err }},
		{"update", func() error {
			_, err := svc.Update(ctx, "nobody", ports.UpdateUserInput{Name: &name})
			return err
		}},
		{"delete", func() error { return svc.Delete(ctx, "nobody") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, domain.ErrUserNotFound) || !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
			if err.Error() != "user not found with id of nobody" {
				t.Fatalf("unexpected message %q", err.Error())
			}
		})
	}
}
