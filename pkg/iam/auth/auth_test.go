package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

func companyPtr(id string) *kernel.CompanyID {
	c := kernel.CompanyID(id)
	return &c
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "jobboard", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(AuthContext{
		UserID:    "user_1",
		Email:     "ana@example.com",
		Role:      RoleCompanyAdmin,
		CompanyID: companyPtr("company_1"),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("expected expiry in the future")
	}

	ac, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ac.UserID != "user_1" || ac.Role != RoleCompanyAdmin {
		t.Errorf("unexpected principal %+v", ac)
	}
	if ac.Email != "ana@example.com" {
		t.Errorf("expected email claim to survive, got %q", ac.Email)
	}
	if !ac.BelongsTo("company_1") || ac.BelongsTo("company_2") {
		t.Error("unexpected company affiliation")
	}
	if !ac.IsCompanyScoped() || ac.IsPlatformAdmin() {
		t.Error("company admin should be company scoped and not a platform admin")
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	a := NewJWTService("secret-a", "jobboard", time.Hour)
	b := NewJWTService("secret-b", "jobboard", time.Hour)

	token, _, err := a.GenerateAccessToken(AuthContext{UserID: "u", Role: RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.ValidateAccessToken(token); !errx.IsCode(err, CodeInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", "jobboard", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := svc.GenerateAccessToken(AuthContext{UserID: "u", Role: RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPasswordService(t *testing.T) {
	p := NewPasswordService(4)

	hash, err := p.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := p.Compare(hash, "hunter2"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := p.Compare(hash, "wrong"); !errx.IsCode(err, CodeInvalidCredentials) {
		t.Errorf("expected invalid credentials, got %v", err)
	}
}

func newTestApp(mw *TokenMiddleware, roles ...Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	handlers := []fiber.Handler{mw.Authenticate()}
	if len(roles) > 0 {
		handlers = append(handlers, mw.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		ac, _ := GetAuthContext(c)
		return c.SendString(ac.UserID.String())
	})
	app.Get("/private", handlers...)
	return app
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTService("secret", "jobboard", time.Hour)
	userToken, _, _ := svc.GenerateAccessToken(AuthContext{UserID: "user_1", Role: RoleUser})

	tests := []struct {
		name   string
		header string
		roles  []Role
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "bad scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + userToken, want: http.StatusOK},
		{name: "wrong role", header: "Bearer " + userToken, roles: []Role{RoleAdmin}, want: http.StatusForbidden},
		{name: "allowed role", header: "Bearer " + userToken, roles: []Role{RoleUser, RoleAdmin}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewTokenMiddleware(svc), tt.roles...)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

type fakeUsers struct {
	byEmail map[kernel.Email]*user.User
}

func (f *fakeUsers) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound()
}

func TestLoginHandler(t *testing.T) {
	passwords := NewPasswordService(4)
	hash, _ := passwords.Hash("pw")
	users := &fakeUsers{byEmail: map[kernel.Email]*user.User{
		"ana@example.com": {ID: "user_1", Email: "ana@example.com", PasswordHash: hash, Role: "user"},
	}}
	tokens := NewJWTService("secret", "jobboard", time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	RegisterRoutes(app, NewHandlers(users, passwords, tokens), NewTokenMiddleware(tokens))

	login := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		return resp
	}

	if resp := login(`{"email":"ana@example.com","password":"nope"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
	if resp := login(`{"email":"bob@example.com","password":"pw"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", resp.StatusCode)
	}

	resp := login(`{"email":"ana@example.com","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	meResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if meResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /auth/me, got %d", meResp.StatusCode)
	}
}
