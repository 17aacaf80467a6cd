package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/dalga/models"
	"github.com/akinalp/dalga/pkg"
	"github.com/akinalp/dalga/repository"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()

	db := newTestDB(t)
	return NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		"test-secret",
		15, // access: 15 dakika
		7,  // refresh: 7 gün
	)
}

func registerRequest() *models.CreateUserRequest {
	return &models.CreateUserRequest{
		Username: "dinleyici",
		Password: "correct-horse",
	}
}

func TestRegisterAndValidate(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if tokens.User.PasswordHash != "" {
		t.Fatal("password hash must never leave the service")
	}

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != tokens.User.ID {
		t.Fatalf("claims carry wrong user: %s != %s", claims.UserID, tokens.User.ID)
	}

	// Aynı kullanıcı adı ikinci kez kayıt olamaz
	_, err = svc.Register(ctx, registerRequest())
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(t)

	for _, tc := range []struct {
		name string
		req  *models.CreateUserRequest
	}{
		{"short username", &models.CreateUserRequest{Username: "ab", Password: "correct-horse"}},
		{"short password", &models.CreateUserRequest{Username: "dinleyici", Password: "1234567"}},
		{"invalid characters", &models.CreateUserRequest{Username: "din leyici", Password: "correct-horse"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if !errors.Is(err, pkg.ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got: %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens, err := svc.Login(ctx, &models.LoginRequest{Username: "dinleyici", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.AccessToken == "" {
		t.Fatal("expected access token")
	}

	// Yanlış şifre ve bilinmeyen kullanıcı aynı hatayı döner —
	// hangi kısmın yanlış olduğu sızdırılmaz
	_, wrongPass := svc.Login(ctx, &models.LoginRequest{Username: "dinleyici", Password: "wrong-pass-123"})
	_, unknownUser := svc.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "correct-horse"})
	if !errors.Is(wrongPass, pkg.ErrUnauthorized) || !errors.Is(unknownUser, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for both, got: %v / %v", wrongPass, unknownUser)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	// Eski refresh token artık geçersiz — tek kullanımlıktır
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for reused token, got: %v", err)
	}

	// Yeni token çalışır
	if _, err := svc.RefreshToken(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("rotated token should work: %v", err)
	}
}

func TestLogout(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("session should be gone after logout, got: %v", err)
	}

	// Logout idempotenttir — bilinmeyen token hata değildir
	if err := svc.Logout(ctx, "unknown-token"); err != nil {
		t.Fatalf("logout with unknown token should be a no-op: %v", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(token); err == nil {
			t.Fatalf("token %q should not validate", token)
		}
	}
}
