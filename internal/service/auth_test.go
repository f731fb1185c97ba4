package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/mocks"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	users    *mocks.MockUserRepositoryIface
	orgs     *mocks.MockOrganizationRepositoryIface
	welcomer *mocks.MockWelcomer
	tokens   *auth.TokenManager
	hasher   *auth.PasswordHasher
	svc      *service.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:    mocks.NewMockUserRepositoryIface(ctrl),
		orgs:     mocks.NewMockOrganizationRepositoryIface(ctrl),
		welcomer: mocks.NewMockWelcomer(ctrl),
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
		hasher:   auth.NewPasswordHasher(),
	}
	f.svc = service.NewAuthService(f.users, f.orgs, f.hasher, f.tokens, f.welcomer)
	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("joins organization by slug", func(t *testing.T) {
		f := newAuthFixture(t)
		org := &model.Organization{ID: uuid.New(), Name: "Acme", Slug: "acme"}
		userID := uuid.New()

		f.users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), "alice@example.com", "alice").Return(false, nil)
		f.orgs.EXPECT().FindBySlug(gomock.Any(), "acme").Return(org, nil)
		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *model.User) error {
				assert.NotEqual(t, "correct horse", u.PasswordHash)
				require.NotNil(t, u.OrganizationID)
				assert.Equal(t, org.ID, *u.OrganizationID)
				u.ID = userID
				return nil
			})
		// Mail failures never fail the registration
		f.welcomer.EXPECT().SendWelcome(gomock.Any(), gomock.Any(), "Acme").Return(errors.New("smtp down"))

		out, err := f.svc.Register(ctx, service.RegisterInput{
			Email:            "Alice@Example.com",
			Username:         "alice",
			Password:         "correct horse",
			OrganizationSlug: "acme",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", out.User.Email)

		claims, err := f.tokens.Validate(out.Token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, org.ID.String(), claims.OrganizationID)

		ok, err := f.hasher.Verify("correct horse", out.User.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown slug is ignored", func(t *testing.T) {
		f := newAuthFixture(t)

		f.users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.orgs.EXPECT().FindBySlug(gomock.Any(), "nope").Return(nil, domain.ErrOrganizationNotFound)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.welcomer.EXPECT().SendWelcome(gomock.Any(), gomock.Any(), "").Return(nil)

		out, err := f.svc.Register(ctx, service.RegisterInput{
			Email:            "bob@example.com",
			Username:         "bob",
			Password:         "password1",
			OrganizationSlug: "nope",
		})
		require.NoError(t, err)
		assert.Nil(t, out.User.OrganizationID)
	})

	t.Run("existing user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(ctx, service.RegisterInput{Email: "bob@example.com", Username: "bob", Password: "password1"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("validation", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.svc.Register(ctx, service.RegisterInput{Email: "not-an-email", Username: "al", Password: "short"})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "email must be a valid email address")
		assert.Contains(t, err.Error(), "username must be at least 3 characters")
		assert.Contains(t, err.Error(), "password must be at least 8 characters")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	hash, err := f.hasher.Hash("correct horse")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		f.users.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(user, nil)

		out, err := f.svc.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, user, out.User)

		claims, err := f.tokens.Validate(out.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Empty(t, claims.OrganizationID)
	})

	t.Run("wrong password", func(t *testing.T) {
		f.users.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(user, nil)

		_, err := f.svc.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		f.users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := f.svc.Login(ctx, service.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, service.LoginInput{Email: "alice@example.com"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
