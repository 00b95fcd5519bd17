package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agencylms/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. IsAdmin is the privileged account flag checked by admin routes.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens.
type Tokens struct {
	Secret      []byte
	TTL         time.Duration
	RememberTTL time.Duration
	Now         func() time.Time
}

func NewTokens(secret string, ttl, rememberTTL time.Duration) Tokens {
	return Tokens{Secret: []byte(secret), TTL: ttl, RememberTTL: rememberTTL}
}

func (t Tokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Issue signs a token; rememberMe switches to the extended lifetime.
func (t Tokens) Issue(userID int64, email string, isAdmin, rememberMe bool) (string, time.Time, error) {
	ttl := t.TTL
	if rememberMe && t.RememberTTL > 0 {
		ttl = t.RememberTTL
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := t.now()
	exp := now.Add(ttl)
	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies signature and expiry.
func (t Tokens) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(tok *jwt.Token) (any, error) {
		return t.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domain.UnauthorizedError{Msg: "session expired, please log in again", Err: err}
		}
		return Claims{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if claims.UserID <= 0 {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[7:])
	return tok, tok != ""
}
