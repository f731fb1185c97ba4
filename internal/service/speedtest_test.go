package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/mocks"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type speedTestFixture struct {
	users       *mocks.MockUserRepositoryIface
	aps         *mocks.MockAccessPointRepositoryIface
	speedTests  *mocks.MockSpeedTestRepositoryIface
	broadcaster *mocks.MockBroadcaster
	svc         *service.SpeedTestService
}

func newSpeedTestFixture(t *testing.T) *speedTestFixture {
	ctrl := gomock.NewController(t)
	f := &speedTestFixture{
		users:       mocks.NewMockUserRepositoryIface(ctrl),
		aps:         mocks.NewMockAccessPointRepositoryIface(ctrl),
		speedTests:  mocks.NewMockSpeedTestRepositoryIface(ctrl),
		broadcaster: mocks.NewMockBroadcaster(ctrl),
	}
	f.svc = service.NewSpeedTestService(f.users, f.aps, f.speedTests, f.broadcaster)
	return f
}

func TestSpeedTestStart(t *testing.T) {
	ctx := context.Background()
	userID, orgID, apID := uuid.New(), uuid.New(), uuid.New()

	t.Run("broadcasts to organization", func(t *testing.T) {
		f := newSpeedTestFixture(t)
		f.aps.EXPECT().FindByID(gomock.Any(), apID).Return(&model.AccessPoint{ID: apID}, nil)
		f.users.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID, OrganizationID: &orgID}, nil)
		f.broadcaster.EXPECT().
			Publish(gomock.Any(), orgID, realtime.EventSpeedTestStart, &service.SpeedTestStarted{AccessPointID: apID, UserID: userID}).
			Return(errors.New("hub stopped"))

		started, err := f.svc.Start(ctx, userID, service.StartSpeedTestInput{AccessPointID: apID})
		require.NoError(t, err)
		assert.Equal(t, apID, started.AccessPointID)
	})

	t.Run("unknown access point", func(t *testing.T) {
		f := newSpeedTestFixture(t)
		f.aps.EXPECT().FindByID(gomock.Any(), apID).Return(nil, domain.ErrAccessPointNotFound)

		_, err := f.svc.Start(ctx, userID, service.StartSpeedTestInput{AccessPointID: apID})
		assert.ErrorIs(t, err, domain.ErrAccessPointNotFound)
	})

	t.Run("missing access point id", func(t *testing.T) {
		f := newSpeedTestFixture(t)

		_, err := f.svc.Start(ctx, userID, service.StartSpeedTestInput{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSpeedTestRecord(t *testing.T) {
	ctx := context.Background()
	userID, apID := uuid.New(), uuid.New()

	t.Run("stores result without organization", func(t *testing.T) {
		f := newSpeedTestFixture(t)
		f.users.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
		f.speedTests.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, st *model.SpeedTest) error {
				assert.Equal(t, apID, st.AccessPointID)
				assert.Equal(t, 0.0, st.UploadSpeed)
				assert.Equal(t, "speedtest.example", *st.TestServer)
				return nil
			})

		test, err := f.svc.Record(ctx, userID, service.SpeedTestInput{
			AccessPointID: apID,
			DownloadSpeed: ptr(54.2),
			UploadSpeed:   ptr(0.0),
			Ping:          ptr(18.0),
			TestServer:    "speedtest.example",
		})
		require.NoError(t, err)
		assert.Equal(t, 54.2, test.DownloadSpeed)
	})

	t.Run("broadcasts completion", func(t *testing.T) {
		f := newSpeedTestFixture(t)
		orgID := uuid.New()
		f.users.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID, OrganizationID: &orgID}, nil)
		f.speedTests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.broadcaster.EXPECT().Publish(gomock.Any(), orgID, realtime.EventSpeedTestComplete, gomock.Any()).Return(nil)

		_, err := f.svc.Record(ctx, userID, service.SpeedTestInput{
			AccessPointID: apID,
			DownloadSpeed: ptr(1.0),
			UploadSpeed:   ptr(1.0),
			Ping:          ptr(1.0),
			TestServer:    "s",
		})
		require.NoError(t, err)
	})

	t.Run("negative speed", func(t *testing.T) {
		f := newSpeedTestFixture(t)

		_, err := f.svc.Record(ctx, userID, service.SpeedTestInput{
			AccessPointID: apID,
			DownloadSpeed: ptr(-1.0),
			UploadSpeed:   ptr(1.0),
			Ping:          ptr(1.0),
			TestServer:    "s",
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "downloadSpeed must be at least 0")
	})
}

func TestSpeedTestHistory(t *testing.T) {
	f := newSpeedTestFixture(t)
	apID := uuid.New()
	stats := &model.SpeedTestStatistics{AvgDownload: ptr(10.0), TotalTests: 3}

	f.speedTests.EXPECT().FindRecentByAccessPoint(gomock.Any(), apID, 20).Return(make([]model.SpeedTest, 3), nil)
	f.speedTests.EXPECT().Statistics(gomock.Any(), apID).Return(stats, nil)

	history, err := f.svc.History(context.Background(), apID)
	require.NoError(t, err)
	assert.Len(t, history.Tests, 3)
	assert.Equal(t, stats, history.Statistics)
}
