// internal/service/wigle.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/apmap/internal/cache"
	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/geo"
	"github.com/dangerclosesec/apmap/internal/metrics"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/dangerclosesec/apmap/internal/wigle"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultImportRadiusKm = 1.0

	siteStatsCacheKey = "wigle:site-stats"
	siteStatsTTL      = 10 * time.Minute
)

// WigleService imports networks observed by WiGLE into the directory.
type WigleService struct {
	users    repository.UserRepositoryIface
	aps      repository.AccessPointRepositoryIface
	source   wigle.Source
	cache    *cache.Cache
	validate *validator.Validate
}

func NewWigleService(
	users repository.UserRepositoryIface,
	aps repository.AccessPointRepositoryIface,
	source wigle.Source,
	cache *cache.Cache,
) *WigleService {
	return &WigleService{
		users:    users,
		aps:      aps,
		source:   source,
		cache:    cache,
		validate: newValidator(),
	}
}

type WigleSearchInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Radius    *float64 `json:"radius" validate:"omitempty,min=0.01,max=10"`
	SSID      string   `json:"ssid" validate:"max=255"`
}

// ImportedNetwork is a WiGLE result as returned to the client
type ImportedNetwork struct {
	SSID         string     `json:"ssid"`
	BSSID        string     `json:"bssid"`
	SecurityType string     `json:"securityType"`
	IsOpen       bool       `json:"isOpen"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LastSeen     *time.Time `json:"lastSeen"`
	FirstSeen    string     `json:"firstSeen,omitempty"`
	Channel      int        `json:"channel,omitempty"`
	QoS          int        `json:"qos,omitempty"`
	Road         string     `json:"road,omitempty"`
	City         string     `json:"city,omitempty"`
	Region       string     `json:"region,omitempty"`
	Country      string     `json:"country,omitempty"`
}

type WigleSearchOutput struct {
	Success      bool              `json:"success"`
	Count        int               `json:"count"`
	Networks     []ImportedNetwork `json:"networks"`
	TotalResults int               `json:"totalResults"`
	SearchAfter  *string           `json:"searchAfter"`
}

// Search queries WiGLE around a point and upserts every named network.
// Known networks only get their last-seen time refreshed. callerID may be
// nil for anonymous imports.
func (s *WigleService) Search(ctx context.Context, input WigleSearchInput, callerID *uuid.UUID) (*WigleSearchOutput, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	radius := DefaultImportRadiusKm
	if input.Radius != nil {
		radius = *input.Radius
	}

	var scope *uuid.UUID
	if callerID != nil {
		var err error
		scope, err = resolveScope(ctx, s.users, *callerID)
		if err != nil {
			return nil, err
		}
	}

	center := geo.Point{Lat: *input.Latitude, Lon: *input.Longitude}
	box := geo.BoundingBox(center, radius)

	resp, err := s.source.Search(ctx, wigle.SearchParams{
		LatRange1:   box.MinLat,
		LatRange2:   box.MaxLat,
		LongRange1:  box.MinLon,
		LongRange2:  box.MaxLon,
		ClosestLat:  center.Lat,
		ClosestLong: center.Lon,
		SSIDLike:    wigle.SSIDPattern(input.SSID),
	})
	if err != nil {
		slog.WarnContext(ctx, "wigle search failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrImportUnavailable, err)
	}

	networks := make([]ImportedNetwork, 0, len(resp.Results))
	for _, n := range resp.Results {
		networks = append(networks, toImportedNetwork(n))
	}

	observed := observedAccessPoints(resp.Results, callerID, scope)
	if len(observed) > 0 {
		if _, err := s.aps.UpsertObserved(ctx, observed); err != nil {
			return nil, err
		}
		metrics.AccessPointsImported.Add(float64(len(observed)))
	}

	out := &WigleSearchOutput{
		Success:      true,
		Count:        len(observed),
		Networks:     networks,
		TotalResults: resp.TotalResults,
	}
	if out.TotalResults == 0 {
		out.TotalResults = len(networks)
	}
	if resp.SearchAfter != "" {
		out.SearchAfter = &resp.SearchAfter
	}
	return out, nil
}

// Statistics returns WiGLE's site statistics, cached for ten minutes
func (s *WigleService) Statistics(ctx context.Context) (wigle.SiteStats, error) {
	var stats wigle.SiteStats
	err := s.cache.GetOrSet(ctx, siteStatsCacheKey, &stats, siteStatsTTL, func(ctx context.Context) (interface{}, error) {
		return s.source.SiteStats(ctx)
	})
	if err != nil {
		slog.WarnContext(ctx, "wigle statistics failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStatisticsUnavailable, err)
	}
	return stats, nil
}

type networkKey struct {
	ssid, bssid string
	lat, lon    float64
}

// observedAccessPoints maps results to access points, dropping unnamed
// networks, invalid positions and duplicates of the upsert key.
func observedAccessPoints(results []wigle.Network, callerID, scope *uuid.UUID) []model.AccessPoint {
	seen := make(map[networkKey]struct{}, len(results))
	aps := make([]model.AccessPoint, 0, len(results))

	for _, n := range results {
		if strings.TrimSpace(n.SSID) == "" {
			continue
		}
		if err := (geo.Point{Lat: n.TriLat, Lon: n.TriLong}).Validate(); err != nil {
			continue
		}

		key := networkKey{ssid: n.SSID, bssid: n.NetID, lat: n.TriLat, lon: n.TriLong}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ap := model.AccessPoint{
			SSID:           n.SSID,
			IsOpen:         n.IsOpen(),
			Latitude:       n.TriLat,
			Longitude:      n.TriLong,
			CreatedBy:      callerID,
			OrganizationID: scope,
			ExternalMeta:   externalMeta(n),
		}
		if n.NetID != "" {
			bssid := n.NetID
			ap.BSSID = &bssid
		}
		if n.Encryption != "" {
			security := n.Encryption
			ap.SecurityType = &security
		}
		if t, ok := n.LastSeen(); ok {
			ap.LastSeen = &t
		}

		aps = append(aps, ap)
	}
	return aps
}

func externalMeta(n wigle.Network) map[string]interface{} {
	meta := map[string]interface{}{"source": "wigle"}
	if n.Channel != 0 {
		meta["channel"] = n.Channel
	}
	if n.QoS != 0 {
		meta["qos"] = n.QoS
	}
	for k, v := range map[string]string{
		"first_seen": n.FirstTime,
		"road":       n.Road,
		"city":       n.City,
		"region":     n.Region,
		"country":    n.Country,
	} {
		if v != "" {
			meta[k] = v
		}
	}
	return meta
}

func toImportedNetwork(n wigle.Network) ImportedNetwork {
	out := ImportedNetwork{
		SSID:         n.SSID,
		BSSID:        n.NetID,
		SecurityType: n.Encryption,
		IsOpen:       n.IsOpen(),
		Latitude:     n.TriLat,
		Longitude:    n.TriLong,
		FirstSeen:    n.FirstTime,
		Channel:      n.Channel,
		QoS:          n.QoS,
		Road:         n.Road,
		City:         n.City,
		Region:       n.Region,
		Country:      n.Country,
	}
	if t, ok := n.LastSeen(); ok {
		out.LastSeen = &t
	}
	return out
}
