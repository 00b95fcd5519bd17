package services

import (
	"context"
	"strings"
	"time"

	"agencylms/internal/auth"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"
	"agencylms/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and password login.
type AuthService struct {
	Users  repositories.UserRepository
	Tokens auth.Tokens
	Cost   int
	Now    func() time.Time
}

type LoginResult struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s AuthService) Register(ctx context.Context, in validation.RegistrationInput, phone string) (models.User, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateRegistration(in).Err(); err != nil {
		return models.User{}, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}

	u := models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
		Status:       models.UserStatusActive,
	}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	utils.LogEvent(ctx, "auth", "register", "user registered", zap.Int64("user_id", id))
	return u, nil
}

func (s AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, errBadCredentials
		}
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, errBadCredentials
	}
	if u.Status == models.UserStatusDisabled {
		return LoginResult{}, domain.ForbiddenError{Msg: "account is disabled"}
	}

	token, exp, err := s.Tokens.Issue(u.ID, u.Email, u.IsAdmin, rememberMe)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "could not issue token", Err: err}
	}

	at := s.now()
	if err := s.Users.UpdateLastLogin(ctx, u.ID, at); err != nil {
		utils.LogWarn(ctx, "auth", "login", "last login update failed", err)
	} else {
		u.LastLoginAt = &at
	}
	utils.LogEvent(ctx, "auth", "login", "user logged in", zap.Int64("user_id", u.ID))
	return LoginResult{Token: token, User: u, ExpiresAt: exp}, nil
}

// Me reloads the caller from the database so revoked admin rights take effect.
func (s AuthService) Me(ctx context.Context, rc domain.RequestContext) (models.User, error) {
	if !rc.Authenticated() {
		return models.User{}, domain.UnauthorizedError{}
	}
	return s.Users.GetByID(ctx, int64(rc.UserID))
}
