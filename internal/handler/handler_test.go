package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/dangerclosesec/apmap/internal/cache"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/handler"
	"github.com/dangerclosesec/apmap/internal/mocks"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiFixture struct {
	users      *mocks.MockUserRepositoryIface
	orgs       *mocks.MockOrganizationRepositoryIface
	aps        *mocks.MockAccessPointRepositoryIface
	passwords  *mocks.MockPasswordRepositoryIface
	ratings    *mocks.MockRatingRepositoryIface
	blocks     *mocks.MockServiceBlockRepositoryIface
	speedTests *mocks.MockSpeedTestRepositoryIface
	favorites  *mocks.MockFavoriteRepositoryIface
	auditLogs  *mocks.MockCredentialAuditLogRepositoryIface
	source     *mocks.MockSource
	welcomer   *mocks.MockWelcomer
	auditLog   *mocks.MockLogger
	tokens     *auth.TokenManager
	router     http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	ctrl := gomock.NewController(t)
	f := &apiFixture{
		users:      mocks.NewMockUserRepositoryIface(ctrl),
		orgs:       mocks.NewMockOrganizationRepositoryIface(ctrl),
		aps:        mocks.NewMockAccessPointRepositoryIface(ctrl),
		passwords:  mocks.NewMockPasswordRepositoryIface(ctrl),
		ratings:    mocks.NewMockRatingRepositoryIface(ctrl),
		blocks:     mocks.NewMockServiceBlockRepositoryIface(ctrl),
		speedTests: mocks.NewMockSpeedTestRepositoryIface(ctrl),
		favorites:  mocks.NewMockFavoriteRepositoryIface(ctrl),
		auditLogs:  mocks.NewMockCredentialAuditLogRepositoryIface(ctrl),
		source:     mocks.NewMockSource(ctrl),
		welcomer:   mocks.NewMockWelcomer(ctrl),
		auditLog:   mocks.NewMockLogger(ctrl),
		tokens:     auth.NewTokenManager("handler-test", time.Hour),
	}
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	orgService := service.NewOrganizationService(f.users, f.orgs, f.aps, f.auditLogs)
	handlers := &handler.Handlers{
		Auth:          handler.NewAuthHandler(service.NewAuthService(f.users, f.orgs, auth.NewPasswordHasher(), f.tokens, f.welcomer)),
		AccessPoints:  handler.NewAccessPointHandler(service.NewAccessPointService(f.users, f.aps, f.passwords, f.ratings, f.blocks, f.speedTests, broadcaster, f.auditLog)),
		Organizations: handler.NewOrganizationHandler(orgService),
		AuditLogs:     handler.NewAuditLogHandler(orgService),
		SpeedTests:    handler.NewSpeedTestHandler(service.NewSpeedTestService(f.users, f.aps, f.speedTests, broadcaster)),
		Wigle:         handler.NewWigleHandler(service.NewWigleService(f.users, f.aps, f.source, cache.New(nil, ""))),
		Users:         handler.NewUserHandler(service.NewUserService(f.users, f.favorites)),
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handlers.Mount(r, f.tokens)
	})
	f.router = r
	return f
}

// login returns a token for a user belonging to orgID, which may be nil
func (f *apiFixture) login(t *testing.T, orgID *uuid.UUID) (uuid.UUID, string) {
	userID := uuid.New()
	f.users.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID, OrganizationID: orgID}, nil).AnyTimes()

	token, err := f.tokens.Generate(userID.String(), "user@example.com", "")
	require.NoError(t, err)
	return userID, token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorBody {
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestAuthRoutes(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		f := newAPIFixture(t)
		f.users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), "new@example.com", "newbie").Return(false, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, u *model.User) error {
			u.ID = uuid.New()
			return nil
		})
		f.welcomer.EXPECT().SendWelcome(gomock.Any(), gomock.Any(), "").Return(nil)

		rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "new@example.com",
			"username": "newbie",
			"password": "longenough",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var out struct {
			User  map[string]interface{} `json:"user"`
			Token string                 `json:"token"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "newbie", out.User["username"])
		assert.NotContains(t, out.User, "password_hash")
	})

	t.Run("duplicate user is a 400", func(t *testing.T) {
		f := newAPIFixture(t)
		f.users.EXPECT().ExistsByEmailOrUsername(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "dup@example.com",
			"username": "dupe",
			"password": "longenough",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := errorOf(t, rec)
		assert.Equal(t, "User already exists", body.Message)
		assert.Equal(t, http.StatusBadRequest, body.Status)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/api/auth/login", "", "{not json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request payload", errorOf(t, rec).Message)
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newAPIFixture(t)
		f.users.EXPECT().FindByEmail(gomock.Any(), "x@example.com").Return(nil, domain.ErrUserNotFound)

		rec := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@example.com", "password": "whatever"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, rec).Message)
	})
}

func TestAccessPointRoutes(t *testing.T) {
	t.Run("nearby anonymous", func(t *testing.T) {
		f := newAPIFixture(t)
		f.aps.EXPECT().FindNearby(gomock.Any(), gomock.Any()).Return([]model.NearbyAccessPoint{{DistanceMeters: 10}}, nil)

		rec := f.do(t, http.MethodGet, "/api/access-points/nearby?lat=40.7&lng=-74&radius=2", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.NotContains(t, out[0], "password")
	})

	t.Run("nearby without coordinates", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/api/access-points/nearby", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Latitude and longitude are required", errorOf(t, rec).Message)
	})

	t.Run("nearby with NaN radius", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/api/access-points/nearby?lat=1&lng=1&radius=NaN", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorOf(t, rec).Message, "radius must be greater than 0")
	})

	t.Run("nearby with non numeric latitude", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/api/access-points/nearby?lat=north&lng=1", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("detail with visible password", func(t *testing.T) {
		f := newAPIFixture(t)
		orgID := uuid.New()
		_, token := f.login(t, &orgID)
		apID := uuid.New()

		f.aps.EXPECT().FindByID(gomock.Any(), apID).Return(&model.AccessPoint{ID: apID, SSID: "Office"}, nil)
		f.ratings.EXPECT().FindRecentByAccessPoint(gomock.Any(), apID, 10).Return(nil, nil)
		f.speedTests.EXPECT().FindRecentByAccessPoint(gomock.Any(), apID, 5).Return(nil, nil)
		f.blocks.EXPECT().FindByAccessPoint(gomock.Any(), apID).Return(nil, nil)
		f.passwords.EXPECT().FindCurrent(gomock.Any(), apID, &orgID).Return(&model.AccessPointPassword{Password: "s3cret", OrganizationID: &orgID}, nil)
		f.auditLog.EXPECT().LogCredentialAccess(gomock.Any(), gomock.Any()).Return(nil)

		rec := f.do(t, http.MethodGet, "/api/access-points/"+apID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.Equal(t, "Office", out["ssid"])
		assert.Equal(t, "s3cret", out["password"])
	})

	t.Run("detail of malformed id", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/api/access-points/not-a-uuid", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Access point not found", errorOf(t, rec).Message)
	})

	t.Run("create requires token", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/api/access-points", "", map[string]interface{}{"ssid": "x"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Access token required", errorOf(t, rec).Message)

		rec = f.do(t, http.MethodPost, "/api/access-points", "forged", map[string]interface{}{"ssid": "x"})
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Invalid or expired token", errorOf(t, rec).Message)
	})

	t.Run("create", func(t *testing.T) {
		f := newAPIFixture(t)
		_, token := f.login(t, nil)
		f.aps.EXPECT().CreateWithPassword(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		rec := f.do(t, http.MethodPost, "/api/access-points", token, map[string]interface{}{
			"ssid":      "Cafe",
			"latitude":  51.5,
			"longitude": -0.12,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unexpected failure is hidden", func(t *testing.T) {
		f := newAPIFixture(t)
		_, token := f.login(t, nil)
		f.ratings.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset by peer"))

		rec := f.do(t, http.MethodPost, "/api/access-points/"+uuid.NewString()+"/rating", token, map[string]interface{}{"overallRating": 3})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := errorOf(t, rec)
		assert.Equal(t, "An unexpected error occurred", body.Message)
		assert.Equal(t, http.StatusInternalServerError, body.Status)
	})

	t.Run("qr code is public", func(t *testing.T) {
		f := newAPIFixture(t)
		apID := uuid.New()
		f.aps.EXPECT().FindByID(gomock.Any(), apID).Return(&model.AccessPoint{ID: apID, SSID: "Lobby"}, nil)
		f.passwords.EXPECT().FindCurrentPublic(gomock.Any(), apID).Return(nil, domain.ErrNoPassword)

		rec := f.do(t, http.MethodGet, "/api/access-points/"+apID.String()+"/qr-code", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out service.QRCodeOutput
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.Equal(t, "WIFI:T:WPA;S:Lobby;P:;;", out.WifiString)
	})
}

func TestOrganizationRoutes(t *testing.T) {
	t.Run("listing another organization is forbidden", func(t *testing.T) {
		f := newAPIFixture(t)
		mine := uuid.New()
		_, token := f.login(t, &mine)
		f.orgs.EXPECT().FindBySlug(gomock.Any(), "other").Return(&model.Organization{ID: uuid.New(), Slug: "other"}, nil)

		rec := f.do(t, http.MethodGet, "/api/organizations/other/access-points", token, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Access denied", errorOf(t, rec).Message)
	})

	t.Run("mine without organization is null", func(t *testing.T) {
		f := newAPIFixture(t)
		_, token := f.login(t, nil)

		rec := f.do(t, http.MethodGet, "/api/organizations/mine", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "null", rec.Body.String())
	})

	t.Run("join", func(t *testing.T) {
		f := newAPIFixture(t)
		userID, token := f.login(t, nil)
		org := &model.Organization{ID: uuid.New(), Name: "Acme", Slug: "acme"}
		f.orgs.EXPECT().FindBySlug(gomock.Any(), "acme").Return(org, nil)
		f.users.EXPECT().SetOrganization(gomock.Any(), userID, &org.ID).Return(nil)

		rec := f.do(t, http.MethodPost, "/api/organizations/join", token, map[string]string{"slug": "acme"})
		require.Equal(t, http.StatusOK, rec.Code)

		var out handler.JoinOrganizationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.True(t, out.Success)
		assert.Equal(t, "acme", out.Organization.Slug)
	})

	t.Run("slug conflict", func(t *testing.T) {
		f := newAPIFixture(t)
		_, token := f.login(t, nil)
		f.orgs.EXPECT().CreateWithFounder(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrSlugTaken)

		rec := f.do(t, http.MethodPost, "/api/organizations", token, map[string]string{"name": "Acme", "slug": "acme"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Organization slug already exists", errorOf(t, rec).Message)
	})

	t.Run("audit logs", func(t *testing.T) {
		f := newAPIFixture(t)
		orgID := uuid.New()
		_, token := f.login(t, &orgID)
		apID := uuid.New()
		f.auditLogs.EXPECT().
			Query(gomock.Any(), gomock.Any()).
			Return([]model.CredentialAuditLog{{AccessPointID: apID, Action: model.ActionPasswordViewed}}, int64(1), nil)

		rec := f.do(t, http.MethodGet, "/api/organizations/mine/audit-logs?access_point_id="+apID.String()+"&limit=10", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page service.AuditLogPage
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 10, page.Limit)
	})
}

func TestWigleRoutes(t *testing.T) {
	f := newAPIFixture(t)
	f.source.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("dial tcp: i/o timeout"))

	rec := f.do(t, http.MethodPost, "/api/wigle/search", "", map[string]interface{}{"latitude": 1, "longitude": 2})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to search WiGLE database", errorOf(t, rec).Message)
}

func TestUserRoutes(t *testing.T) {
	t.Run("duplicate favorite", func(t *testing.T) {
		f := newAPIFixture(t)
		_, token := f.login(t, nil)
		f.favorites.EXPECT().Add(gomock.Any(), gomock.Any()).Return(domain.ErrAlreadyFavorite)

		rec := f.do(t, http.MethodPost, "/api/user/favorites/"+uuid.NewString(), token, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Already in favorites", errorOf(t, rec).Message)
	})

	t.Run("remove favorite", func(t *testing.T) {
		f := newAPIFixture(t)
		userID, token := f.login(t, nil)
		apID := uuid.New()
		f.favorites.EXPECT().Remove(gomock.Any(), userID, apID).Return(nil)

		rec := f.do(t, http.MethodDelete, "/api/user/favorites/"+apID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})
}

func TestSpeedTestRoutes(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.login(t, nil)
	apID := uuid.New()
	f.speedTests.EXPECT().FindRecentByAccessPoint(gomock.Any(), apID, 20).Return([]model.SpeedTest{}, nil)
	f.speedTests.EXPECT().Statistics(gomock.Any(), apID).Return(&model.SpeedTestStatistics{}, nil)

	rec := f.do(t, http.MethodGet, "/api/speed-test/history/"+apID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Contains(t, out, "tests")
	assert.Contains(t, out, "statistics")
}
