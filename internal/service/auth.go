// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/email/mailer"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
)

type AuthService struct {
	users          repository.UserRepositoryIface
	orgs           repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	welcomer       mailer.Welcomer
	validate       *validator.Validate
}

func NewAuthService(
	users repository.UserRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	welcomer mailer.Welcomer,
) *AuthService {
	return &AuthService{
		users:          users,
		orgs:           orgs,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		welcomer:       welcomer,
		validate:       newValidator(),
	}
}

type RegisterInput struct {
	Email            string `json:"email" validate:"required,email,max=255"`
	Username         string `json:"username" validate:"required,min=3,max=100"`
	Password         string `json:"password" validate:"required,min=8"`
	OrganizationSlug string `json:"organizationSlug"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account. An unknown organization slug is ignored and
// the user starts without an organization.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	var org *model.Organization
	if slug := strings.TrimSpace(input.OrganizationSlug); slug != "" {
		org, err = s.orgs.FindBySlug(ctx, slug)
		if err != nil && !errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, fmt.Errorf("finding organization: %w", err)
		}
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
	}
	if org != nil {
		user.OrganizationID = &org.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if s.welcomer != nil {
		orgName := ""
		if org != nil {
			orgName = org.Name
		}
		if err := s.welcomer.SendWelcome(ctx, user, orgName); err != nil {
			slog.WarnContext(ctx, "failed to send welcome email", "user", user.ID.String(), "error", err)
		}
	}

	return &AuthOutput{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{User: user, Token: token}, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	orgID := ""
	if user.OrganizationID != nil {
		orgID = user.OrganizationID.String()
	}

	token, err := s.tokenManager.Generate(user.ID.String(), user.Email, orgID)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}
