package auth

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	users     user.Repository
	passwords *PasswordService
	tokens    TokenService
}

func NewHandlers(users user.Repository, passwords *PasswordService, tokens TokenService) *Handlers {
	return &Handlers{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        *user.User `json:"user"`
}

// Login exchanges credentials for an access token
// POST /auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errx.New("email and password are required", errx.TypeValidation)
	}

	u, err := h.users.FindByEmail(c.Context(), kernel.Email(req.Email))
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return ErrInvalidCredentials()
		}
		return err
	}

	if err := h.passwords.Compare(u.PasswordHash, req.Password); err != nil {
		return err
	}

	token, expiresAt, err := h.tokens.GenerateAccessToken(AuthContext{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      Role(u.Role),
		CompanyID: u.CompanyID,
	})
	if err != nil {
		return err
	}

	logx.Infof("User %s signed in", u.ID)

	return c.JSON(LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        u,
	})
}

// Me returns the authenticated principal
// GET /auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	ac, ok := GetAuthContext(c)
	if !ok {
		return ErrMissingToken()
	}

	u, err := h.users.FindByID(c.Context(), ac.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"auth": ac,
		"user": u,
	})
}

// RegisterRoutes registers the authentication routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, middleware *TokenMiddleware) {
	api := app.Group("/auth")

	api.Post("/login", handlers.Login)
	api.Get("/me", middleware.Authenticate(), handlers.Me)
}
