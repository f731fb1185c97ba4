// internal/service/speedtest.go
package service

import (
	"context"

	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const speedTestHistoryLimit = 20

// SpeedTestService stores speed test results measured by clients and
// announces them to the tester's organization.
type SpeedTestService struct {
	users       repository.UserRepositoryIface
	aps         repository.AccessPointRepositoryIface
	speedTests  repository.SpeedTestRepositoryIface
	broadcaster realtime.Broadcaster
	validate    *validator.Validate
}

func NewSpeedTestService(
	users repository.UserRepositoryIface,
	aps repository.AccessPointRepositoryIface,
	speedTests repository.SpeedTestRepositoryIface,
	broadcaster realtime.Broadcaster,
) *SpeedTestService {
	return &SpeedTestService{
		users:       users,
		aps:         aps,
		speedTests:  speedTests,
		broadcaster: broadcaster,
		validate:    newValidator(),
	}
}

type StartSpeedTestInput struct {
	AccessPointID uuid.UUID `json:"accessPointId" validate:"required"`
}

// SpeedTestStarted is the payload of the speed-test-start event
type SpeedTestStarted struct {
	AccessPointID uuid.UUID `json:"accessPointId"`
	UserID        uuid.UUID `json:"userId"`
}

// Start announces that the user began measuring an access point. Nothing
// is stored until the result is saved.
func (s *SpeedTestService) Start(ctx context.Context, userID uuid.UUID, input StartSpeedTestInput) (*SpeedTestStarted, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	if _, err := s.aps.FindByID(ctx, input.AccessPointID); err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	started := &SpeedTestStarted{AccessPointID: input.AccessPointID, UserID: userID}
	publish(ctx, s.broadcaster, scope, realtime.EventSpeedTestStart, started)
	return started, nil
}

type SpeedTestInput struct {
	AccessPointID uuid.UUID `json:"accessPointId" validate:"required"`
	DownloadSpeed *float64  `json:"downloadSpeed" validate:"required,gte=0"`
	UploadSpeed   *float64  `json:"uploadSpeed" validate:"required,gte=0"`
	Ping          *float64  `json:"ping" validate:"required,gte=0"`
	TestServer    string    `json:"testServer" validate:"required,max=255"`
}

// Record appends a measured result
func (s *SpeedTestService) Record(ctx context.Context, userID uuid.UUID, input SpeedTestInput) (*model.SpeedTest, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	test := &model.SpeedTest{
		AccessPointID: input.AccessPointID,
		UserID:        &userID,
		DownloadSpeed: *input.DownloadSpeed,
		UploadSpeed:   *input.UploadSpeed,
		Ping:          *input.Ping,
		TestServer:    &input.TestServer,
	}
	if err := s.speedTests.Create(ctx, test); err != nil {
		return nil, err
	}

	publish(ctx, s.broadcaster, scope, realtime.EventSpeedTestComplete, test)
	return test, nil
}

type SpeedTestHistory struct {
	Tests      []model.SpeedTest          `json:"tests"`
	Statistics *model.SpeedTestStatistics `json:"statistics"`
}

// History returns the latest results, newest first, and the averages over
// all results.
func (s *SpeedTestService) History(ctx context.Context, accessPointID uuid.UUID) (*SpeedTestHistory, error) {
	tests, err := s.speedTests.FindRecentByAccessPoint(ctx, accessPointID, speedTestHistoryLimit)
	if err != nil {
		return nil, err
	}

	stats, err := s.speedTests.Statistics(ctx, accessPointID)
	if err != nil {
		return nil, err
	}

	return &SpeedTestHistory{Tests: tests, Statistics: stats}, nil
}
