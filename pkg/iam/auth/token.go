package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(ac AuthContext) (string, time.Time, error)
	ValidateAccessToken(token string) (*AuthContext, error)
}

type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates an HS256 token service
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(ac AuthContext) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Email: ac.Email.String(),
		Role:  ac.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ac.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if ac.CompanyID != nil {
		claims.CompanyID = ac.CompanyID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*AuthContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return nil, ErrInvalidToken().WithCause(err)
	}

	role := Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() {
		return nil, ErrInvalidToken().WithDetail("reason", "missing subject or role")
	}

	ac := &AuthContext{
		UserID: kernel.UserID(claims.Subject),
		Email:  kernel.Email(claims.Email),
		Role:   role,
	}
	if claims.CompanyID != "" {
		cid := kernel.CompanyID(claims.CompanyID)
		ac.CompanyID = &cid
	}
	return ac, nil
}
