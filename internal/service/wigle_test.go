package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/apmap/internal/cache"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/mocks"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/dangerclosesec/apmap/internal/wigle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type wigleFixture struct {
	users  *mocks.MockUserRepositoryIface
	aps    *mocks.MockAccessPointRepositoryIface
	source *mocks.MockSource
	svc    *service.WigleService
}

func newWigleFixture(t *testing.T) *wigleFixture {
	ctrl := gomock.NewController(t)
	f := &wigleFixture{
		users:  mocks.NewMockUserRepositoryIface(ctrl),
		aps:    mocks.NewMockAccessPointRepositoryIface(ctrl),
		source: mocks.NewMockSource(ctrl),
	}
	f.svc = service.NewWigleService(f.users, f.aps, f.source, cache.New(nil, "test:"))
	return f
}

func TestWigleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("imports named networks once", func(t *testing.T) {
		f := newWigleFixture(t)
		userID, orgID := uuid.New(), uuid.New()
		f.users.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID, OrganizationID: &orgID}, nil)

		f.source.EXPECT().
			Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, p wigle.SearchParams) (*wigle.SearchResponse, error) {
				assert.Less(t, p.LatRange1, p.LatRange2)
				assert.Less(t, p.LongRange1, p.LongRange2)
				assert.Equal(t, 40.0, p.ClosestLat)
				assert.Equal(t, "%Cafe%", p.SSIDLike)
				return &wigle.SearchResponse{
					Success:      true,
					TotalResults: 250,
					SearchAfter:  "cursor",
					Results: []wigle.Network{
						{SSID: "CafeNet", NetID: "aa:bb:cc:dd:ee:ff", Encryption: "wpa2", TriLat: 40.001, TriLong: -74.001, LastTime: "2024-03-01T10:00:00.000Z", City: "NYC"},
						{SSID: "CafeNet", NetID: "aa:bb:cc:dd:ee:ff", Encryption: "wpa2", TriLat: 40.001, TriLong: -74.001},
						{SSID: "", NetID: "11:22:33:44:55:66", TriLat: 40, TriLong: -74},
						{SSID: "CafeGuest", NetID: "aa:bb:cc:dd:ee:00", Encryption: "none", TriLat: 40.002, TriLong: -74.002},
					},
				}, nil
			})
		f.aps.EXPECT().
			UpsertObserved(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, aps []model.AccessPoint) ([]model.AccessPoint, error) {
				require.Len(t, aps, 2)
				assert.Equal(t, "CafeNet", aps[0].SSID)
				assert.Equal(t, &orgID, aps[0].OrganizationID)
				assert.Equal(t, &userID, aps[0].CreatedBy)
				assert.Equal(t, "wigle", aps[0].ExternalMeta["source"])
				assert.Equal(t, "NYC", aps[0].ExternalMeta["city"])
				require.NotNil(t, aps[0].LastSeen)
				assert.False(t, aps[0].IsOpen)
				assert.True(t, aps[1].IsOpen)
				return aps, nil
			})

		out, err := f.svc.Search(ctx, service.WigleSearchInput{
			Latitude:  ptr(40.0),
			Longitude: ptr(-74.0),
			SSID:      "Cafe",
		}, &userID)
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, 2, out.Count)
		assert.Len(t, out.Networks, 4)
		assert.Equal(t, 250, out.TotalResults)
		require.NotNil(t, out.SearchAfter)
		assert.Equal(t, "cursor", *out.SearchAfter)
	})

	t.Run("anonymous search with no results", func(t *testing.T) {
		f := newWigleFixture(t)
		f.source.EXPECT().Search(gomock.Any(), gomock.Any()).Return(&wigle.SearchResponse{Success: true}, nil)

		out, err := f.svc.Search(ctx, service.WigleSearchInput{Latitude: ptr(1.0), Longitude: ptr(1.0)}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
		assert.Empty(t, out.Networks)
		assert.Nil(t, out.SearchAfter)
	})

	t.Run("source failure", func(t *testing.T) {
		f := newWigleFixture(t)
		f.source.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, &wigle.APIError{StatusCode: 429, Message: "too many queries"})

		_, err := f.svc.Search(ctx, service.WigleSearchInput{Latitude: ptr(1.0), Longitude: ptr(1.0)}, nil)
		require.ErrorIs(t, err, domain.ErrImportUnavailable)
		assert.ErrorIs(t, err, domain.ErrDependency)
		assert.Equal(t, "Failed to search WiGLE database", domain.Message(err, ""))
	})

	t.Run("radius out of range", func(t *testing.T) {
		f := newWigleFixture(t)

		_, err := f.svc.Search(ctx, service.WigleSearchInput{Latitude: ptr(1.0), Longitude: ptr(1.0), Radius: ptr(20.0)}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestWigleStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newWigleFixture(t)
		f.source.EXPECT().SiteStats(gomock.Any()).Return(wigle.SiteStats{"netwpa2": 1000.0}, nil)

		stats, err := f.svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, stats["netwpa2"])
	})

	t.Run("failure", func(t *testing.T) {
		f := newWigleFixture(t)
		f.source.EXPECT().SiteStats(gomock.Any()).Return(nil, errors.New("boom"))

		_, err := f.svc.Statistics(ctx)
		assert.ErrorIs(t, err, domain.ErrStatisticsUnavailable)
	})
}
