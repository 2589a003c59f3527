package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/pkg/cryptox"
	"github.com/project-nt/auth/pkg/idx"
	"github.com/project-nt/auth/pkg/slogx"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	CooperationType string
	Phone           string
	Techs           string
	OnlineFlag      string // "online", "offline" or anything else for unknown
}

type UserService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an account. Email is the identity key and must be unused.
// It is stored exactly as given, the same form every lookup uses.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	email := in.Email
	if strings.TrimSpace(email) == "" || in.Password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, oops.Code("REGISTER_FAILED").With("operation", "hash password").Wrap(err)
	}

	now := s.now().UTC()
	u := domain.User{
		ID:              idx.NewAt(now).String(),
		Name:            in.Name,
		Email:           email,
		PasswordHash:    hash,
		CooperationType: in.CooperationType,
		Phone:           in.Phone,
		Techs:           in.Techs,
		OnOff:           domain.ParseOnOff(in.OnlineFlag),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, oops.Code("REGISTER_FAILED").With("operation", "insert user").With("email", email).Wrap(err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// FindEmail returns the email of the oldest account matching name and
// phone, or "" when none matches.
func (s *UserService) FindEmail(ctx context.Context, name, phone string) (string, error) {
	users, err := s.Store.Users().FindUsersByNameAndPhone(ctx, name, phone)
	if err != nil {
		return "", oops.Code("FIND_EMAIL_FAILED").With("operation", "lookup users").Wrap(err)
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].Email, nil
}

// Profile fetches the account behind a session.
func (s *UserService) Profile(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, oops.Code("PROFILE_FAILED").With("operation", "lookup user").Wrap(err)
	}
	return u, nil
}
