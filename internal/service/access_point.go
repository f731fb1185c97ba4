// internal/service/access_point.go
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/dangerclosesec/apmap/internal/audit"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/geo"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultNearbyRadiusKm = 5.0
	MaxNearbyRadiusKm     = 50.0
	NearbyLimit           = 50

	detailRatingLimit    = 10
	detailSpeedTestLimit = 5
	qrCodeSize           = 256
)

type AccessPointService struct {
	users       repository.UserRepositoryIface
	aps         repository.AccessPointRepositoryIface
	passwords   repository.PasswordRepositoryIface
	ratings     repository.RatingRepositoryIface
	blocks      repository.ServiceBlockRepositoryIface
	speedTests  repository.SpeedTestRepositoryIface
	broadcaster realtime.Broadcaster
	auditLog    audit.Logger
	validate    *validator.Validate
}

func NewAccessPointService(
	users repository.UserRepositoryIface,
	aps repository.AccessPointRepositoryIface,
	passwords repository.PasswordRepositoryIface,
	ratings repository.RatingRepositoryIface,
	blocks repository.ServiceBlockRepositoryIface,
	speedTests repository.SpeedTestRepositoryIface,
	broadcaster realtime.Broadcaster,
	auditLog audit.Logger,
) *AccessPointService {
	if auditLog == nil {
		auditLog = audit.NoOpLogger{}
	}
	return &AccessPointService{
		users:       users,
		aps:         aps,
		passwords:   passwords,
		ratings:     ratings,
		blocks:      blocks,
		speedTests:  speedTests,
		broadcaster: broadcaster,
		auditLog:    auditLog,
		validate:    newValidator(),
	}
}

type CreateAccessPointInput struct {
	SSID          string   `json:"ssid" validate:"required,min=1,max=255"`
	BSSID         *string  `json:"bssid" validate:"omitempty,max=17"`
	SecurityType  *string  `json:"securityType" validate:"omitempty,max=50"`
	Password      string   `json:"password"`
	IsOpen        bool     `json:"isOpen"`
	RequiresLogin bool     `json:"requiresLogin"`
	Latitude      *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Address       *string  `json:"address"`
	VenueName     *string  `json:"venueName" validate:"omitempty,max=255"`
	VenueType     *string  `json:"venueType" validate:"omitempty,max=100"`
}

// Create stores a new access point owned by the creator's organization,
// together with its first password when one is given for a secured network.
func (s *AccessPointService) Create(ctx context.Context, creatorID uuid.UUID, input CreateAccessPointInput) (*model.AccessPoint, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, s.users, creatorID)
	if err != nil {
		return nil, err
	}

	ap := &model.AccessPoint{
		SSID:           input.SSID,
		BSSID:          input.BSSID,
		SecurityType:   input.SecurityType,
		IsOpen:         input.IsOpen,
		RequiresLogin:  input.RequiresLogin,
		Latitude:       *input.Latitude,
		Longitude:      *input.Longitude,
		Address:        input.Address,
		VenueName:      input.VenueName,
		VenueType:      input.VenueType,
		CreatedBy:      &creatorID,
		OrganizationID: scope,
	}

	var password *model.AccessPointPassword
	if input.Password != "" && !input.IsOpen {
		password = &model.AccessPointPassword{
			Password:       input.Password,
			AddedBy:        &creatorID,
			OrganizationID: scope,
			IsCurrent:      true,
		}
	}

	if err := s.aps.CreateWithPassword(ctx, ap, password); err != nil {
		return nil, err
	}

	publish(ctx, s.broadcaster, scope, realtime.EventNewAccessPoint, ap)
	return ap, nil
}

// Get returns an access point with its recent feedback. The password is
// only resolved for authenticated requesters and only when it is public or
// belongs to the requester's organization.
func (s *AccessPointService) Get(ctx context.Context, id uuid.UUID, requesterID *uuid.UUID) (*model.AccessPointDetail, error) {
	ap, err := s.aps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratings.FindRecentByAccessPoint(ctx, id, detailRatingLimit)
	if err != nil {
		return nil, err
	}
	speedTests, err := s.speedTests.FindRecentByAccessPoint(ctx, id, detailSpeedTestLimit)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.FindByAccessPoint(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.AccessPointDetail{
		AccessPoint:   *ap,
		Ratings:       ratings,
		SpeedTests:    speedTests,
		ServiceBlocks: blocks,
	}

	if requesterID == nil {
		return detail, nil
	}

	scope, err := resolveScope(ctx, s.users, *requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return detail, nil
		}
		return nil, err
	}

	password, err := s.passwords.FindCurrent(ctx, id, scope)
	if err != nil {
		if errors.Is(err, domain.ErrNoPassword) {
			return detail, nil
		}
		return nil, err
	}

	detail.Password = &password.Password
	s.logAccess(ctx, id, requesterID, password.OrganizationID, model.ActionPasswordViewed)
	return detail, nil
}

type SetPasswordInput struct {
	Password string `json:"password"`
}

// SetPassword replaces the access point's current password. The new one is
// scoped to the setter's organization, or public when the setter has none.
func (s *AccessPointService) SetPassword(ctx context.Context, accessPointID, setterID uuid.UUID, input SetPasswordInput) (*model.AccessPointPassword, error) {
	if input.Password == "" {
		return nil, domain.ErrPasswordRequired
	}

	scope, err := resolveScope(ctx, s.users, setterID)
	if err != nil {
		return nil, err
	}

	password := &model.AccessPointPassword{
		AccessPointID:  accessPointID,
		Password:       input.Password,
		AddedBy:        &setterID,
		OrganizationID: scope,
		IsCurrent:      true,
	}
	if err := s.passwords.Rotate(ctx, password); err != nil {
		return nil, err
	}

	s.logAccess(ctx, accessPointID, &setterID, scope, model.ActionPasswordRotated)
	return password, nil
}

type RatingInput struct {
	OverallRating     int     `json:"overallRating" validate:"required,min=1,max=5"`
	SpeedRating       *int    `json:"speedRating" validate:"omitempty,min=1,max=5"`
	ReliabilityRating *int    `json:"reliabilityRating" validate:"omitempty,min=1,max=5"`
	Comment           *string `json:"comment"`
}

// Rate stores the user's rating, replacing any earlier one
func (s *AccessPointService) Rate(ctx context.Context, accessPointID, userID uuid.UUID, input RatingInput) (*model.Rating, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	rating := &model.Rating{
		AccessPointID:     accessPointID,
		UserID:            userID,
		OverallRating:     input.OverallRating,
		SpeedRating:       input.SpeedRating,
		ReliabilityRating: input.ReliabilityRating,
		Comment:           input.Comment,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

type ServiceBlockInput struct {
	ServiceName string `json:"serviceName" validate:"required,max=100"`
	IsBlocked   *bool  `json:"isBlocked" validate:"required"`
}

// ReportServiceBlock records whether a service is reachable through the
// access point. Repeated reports of the same service raise its
// verified count.
func (s *AccessPointService) ReportServiceBlock(ctx context.Context, accessPointID, userID uuid.UUID, input ServiceBlockInput) (*model.ServiceBlock, error) {
	input.ServiceName = strings.TrimSpace(input.ServiceName)
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	block := &model.ServiceBlock{
		AccessPointID: accessPointID,
		ServiceName:   input.ServiceName,
		IsBlocked:     *input.IsBlocked,
		ReportedBy:    &userID,
	}
	if err := s.blocks.Upsert(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

type QRCodeOutput struct {
	QRCode     string `json:"qrCode"`
	WifiString string `json:"wifiString"`
}

// QRCode renders the WIFI: join payload of an access point as a PNG data
// URL. Only the public password is ever embedded.
func (s *AccessPointService) QRCode(ctx context.Context, id uuid.UUID) (*QRCodeOutput, error) {
	ap, err := s.aps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	password := ""
	current, err := s.passwords.FindCurrentPublic(ctx, id)
	switch {
	case err == nil:
		password = current.Password
	case !errors.Is(err, domain.ErrNoPassword):
		return nil, err
	}

	wifi := WifiString(ap, password)
	png, err := qrcode.Encode(wifi, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}

	if password != "" {
		s.logAccess(ctx, id, nil, nil, model.ActionPasswordQRCode)
	}

	return &QRCodeOutput{
		QRCode:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		WifiString: wifi,
	}, nil
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

// WifiString builds the WIFI: URI understood by phone cameras. Security
// defaults to WPA when unknown.
func WifiString(ap *model.AccessPoint, password string) string {
	security := "WPA"
	if ap.SecurityType != nil && *ap.SecurityType != "" {
		security = *ap.SecurityType
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", wifiEscaper.Replace(security), wifiEscaper.Replace(ap.SSID), wifiEscaper.Replace(password))
}

type NearbyInput struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

// Nearby lists access points within the radius, closest first
func (s *AccessPointService) Nearby(ctx context.Context, input NearbyInput) ([]model.NearbyAccessPoint, error) {
	if input.Latitude == nil || input.Longitude == nil {
		return nil, domain.New(domain.ErrValidation, "Latitude and longitude are required")
	}

	center := geo.Point{Lat: *input.Latitude, Lon: *input.Longitude}
	if err := center.Validate(); err != nil {
		return nil, domain.New(domain.ErrValidation, err.Error())
	}

	radius := DefaultNearbyRadiusKm
	if input.RadiusKm != nil {
		radius = *input.RadiusKm
	}
	if math.IsNaN(radius) || radius <= 0 || radius > MaxNearbyRadiusKm {
		return nil, domain.New(domain.ErrValidation, fmt.Sprintf("radius must be greater than 0 and at most %g km", MaxNearbyRadiusKm))
	}

	return s.aps.FindNearby(ctx, repository.NearbyQuery{
		Latitude:     center.Lat,
		Longitude:    center.Lon,
		RadiusMeters: radius * 1000,
		Limit:        NearbyLimit,
	})
}

func (s *AccessPointService) logAccess(ctx context.Context, accessPointID uuid.UUID, actorID, orgID *uuid.UUID, action string) {
	err := s.auditLog.LogCredentialAccess(ctx, audit.Entry{
		AccessPointID:  accessPointID,
		ActorID:        actorID,
		OrganizationID: orgID,
		Action:         action,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to write credential audit log", "accessPoint", accessPointID.String(), "action", action, "error", err)
	}
}
