package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
	"github.com/oksasatya/go-commerce-api/pkg/validation"
)

// Soft-fail outcomes of the auth operations. Messages are part of the API
// contract: registration failures are field-specific, while login, reset, and
// profile update deliberately reuse one generic message per flow so a caller
// cannot learn which half of a credential pair was wrong.
var (
	ErrNameRequired        = NewFault("name is required")
	ErrEmailRequired       = NewFault("email is required")
	ErrEmailInvalid        = NewFault("please enter a valid email")
	ErrPasswordRequired    = NewFault("password is required")
	ErrPasswordTooShort    = NewFault("password must be at least 6 characters")
	ErrPhoneRequired       = NewFault("phone number is required")
	ErrPhoneInvalid        = NewFault("please enter a valid phone number")
	ErrAddressRequired     = NewFault("address is required")
	ErrAnswerRequired      = NewFault("security answer is required")
	ErrNewPasswordRequired = NewFault("new password is required")

	ErrAlreadyRegistered    = NewFault("already registered, please login")
	ErrInvalidCredentials   = NewFault("invalid email or password")
	ErrInvalidEmailOrAnswer = NewFault("invalid email or answer")
	ErrUnauthorized         = NewFault("unauthorized")
)

// AuthService orchestrates registration, login, password reset by security
// answer, and profile update over the user store.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// Register creates a new standard-role account. Preconditions are checked in
// a fixed order and short-circuit on the first failure; that order is part of
// the API contract. The returned user still carries the credential digest;
// the HTTP layer strips it via the public projection.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, ErrNameRequired
	case in.Email == "":
		return nil, ErrEmailRequired
	case !validation.IsValidEmail(in.Email):
		return nil, ErrEmailInvalid
	case in.Password == "":
		return nil, ErrPasswordRequired
	case !validation.IsValidPassword(in.Password):
		return nil, ErrPasswordTooShort
	case in.Phone == "":
		return nil, ErrPhoneRequired
	case !validation.IsValidPhone(in.Phone):
		return nil, ErrPhoneInvalid
	case strings.TrimSpace(in.Address) == "":
		return nil, ErrAddressRequired
	case strings.TrimSpace(in.Answer) == "":
		return nil, ErrAnswerRequired
	}

	// Fast path only; the unique index decides the race when two
	// registrations for the same email arrive concurrently.
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   in.Answer,
		Role:     entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

type LoginResult struct {
	User      entity.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the identical fault.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return nil, err
	}
	return &LoginResult{User: u.Public(), Token: token, ExpiresAt: exp}, nil
}

// ResetPassword overwrites the credential of the account matching BOTH email
// and security answer. A mismatch on either yields the same fault.
func (s *AuthService) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	switch {
	case email == "":
		return ErrEmailRequired
	case answer == "":
		return ErrAnswerRequired
	case newPassword == "":
		return ErrNewPasswordRequired
	case !validation.IsValidPassword(newPassword):
		return ErrPasswordTooShort
	}

	u, err := s.Repo.GetByEmailAndAnswer(ctx, email, answer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidEmailOrAnswer
		}
		return err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, u.ID, hash)
}

type UpdateProfileInput struct {
	Email           string
	CurrentPassword string
	Name            string
	NewPassword     string
	Phone           string
	Address         string
}

// UpdateProfile re-authenticates with the current password, then merges the
// supplied fields over the stored record: empty inputs keep the stored value,
// and the credential is replaced only when NewPassword is non-empty. Unknown
// email and wrong password share one fault.
func (s *AuthService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.CurrentPassword) {
		return nil, ErrUnauthorized
	}

	// The caller is authenticated from here on, so these messages may be
	// specific.
	if in.NewPassword != "" && !validation.IsValidPassword(in.NewPassword) {
		return nil, ErrPasswordTooShort
	}
	if in.Phone != "" && !validation.IsValidPhone(in.Phone) {
		return nil, ErrPhoneInvalid
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if strings.TrimSpace(in.Address) != "" {
		u.Address = in.Address
	}
	if in.NewPassword != "" {
		hash, err := helpers.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
