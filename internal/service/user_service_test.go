package service

import (
	"errors"
	"testing"

	"barber-pos-api/internal/model"
	"barber-pos-api/pkg/jwt"

	"github.com/rs/zerolog"
)

func TestSetupOnlyOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo)

	admin, err := svc.Setup(&CreateUserRequest{Username: "root", Email: "root@example.com", Password: "secret1", Role: model.RoleEmployee})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("setup must create an admin, got %s", admin.Role)
	}
	if _, err := svc.Setup(&CreateUserRequest{Username: "other", Email: "o@example.com", Password: "secret1"}); !errors.Is(err, ErrSetupDone) {
		t.Fatalf("expected setup done, got %v", err)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo)
	req := func(username, email string) *CreateUserRequest {
		return &CreateUserRequest{Username: username, Email: email, Password: "secret1", Role: model.RoleManager}
	}

	if _, err := svc.CreateUser(req("mgr", "mgr@example.com"), testActor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateUser(req("mgr", "x@example.com"), testActor); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate username: %v", err)
	}
	if _, err := svc.CreateUser(req("other", "mgr@example.com"), testActor); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate email: %v", err)
	}
	if _, err := svc.CreateUser(&CreateUserRequest{Username: "x", Email: "x@example.com", Password: "secret1", Role: "owner"}, testActor); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad role: %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.userRepo)
	u, err := svc.CreateUser(&CreateUserRequest{Username: "emp", Email: "emp@example.com", Password: "secret1", Role: model.RoleEmployee}, testActor)
	if err != nil {
		t.Fatal(err)
	}

	pw := "newsecret"
	if _, err := svc.UpdateUser(u.ID, &UpdateUserRequest{Password: &pw}, testActor); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := f.userRepo.FindByID(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.CheckPassword(pw) || stored.CheckPassword("secret1") {
		t.Fatal("password was not re-hashed")
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.userRepo)
	auth := NewAuthService(f.userRepo, zerolog.Nop())
	jwt.Configure("test-secret")
	t.Cleanup(func() { jwt.Configure("") })

	u, err := users.CreateUser(&CreateUserRequest{Username: "emp", Email: "emp@example.com", Password: "secret1", Role: model.RoleEmployee}, testActor)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := auth.Login(&LoginRequest{Username: " emp ", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != model.RoleEmployee {
		t.Fatalf("claims: %+v", claims)
	}
	if resp.User.LastLoginAt == nil {
		t.Error("last login not set")
	}

	if _, err := auth.Login(&LoginRequest{Username: "emp", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := auth.Login(&LoginRequest{Username: "ghost", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}

	inactive := false
	if _, err := users.UpdateUser(u.ID, &UpdateUserRequest{IsActive: &inactive}, testActor); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login(&LoginRequest{Username: "emp", Password: "secret1"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive user: %v", err)
	}
}
