// internal/service/organization.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultAuditLogLimit = 50
	maxAuditLogLimit     = 200
)

// OrganizationService manages membership. A user belongs to at most one
// organization and anyone knowing a slug may join it.
type OrganizationService struct {
	users     repository.UserRepositoryIface
	orgs      repository.OrganizationRepositoryIface
	aps       repository.AccessPointRepositoryIface
	auditLogs repository.CredentialAuditLogRepositoryIface
	validate  *validator.Validate
}

func NewOrganizationService(
	users repository.UserRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	aps repository.AccessPointRepositoryIface,
	auditLogs repository.CredentialAuditLogRepositoryIface,
) *OrganizationService {
	return &OrganizationService{
		users:     users,
		orgs:      orgs,
		aps:       aps,
		auditLogs: auditLogs,
		validate:  newValidator(),
	}
}

type CreateOrganizationInput struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Slug string `json:"slug" validate:"required,min=2,max=255,slug"`
}

// Create makes a new organization with the founder as its first member
func (s *OrganizationService) Create(ctx context.Context, founderID uuid.UUID, input CreateOrganizationInput) (*model.Organization, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	org := &model.Organization{
		Name:      input.Name,
		Slug:      input.Slug,
		CreatedBy: &founderID,
	}
	if err := s.orgs.CreateWithFounder(ctx, org, founderID); err != nil {
		return nil, err
	}
	return org, nil
}

// Join moves the user into the organization with the given slug, leaving
// any previous one.
func (s *OrganizationService) Join(ctx context.Context, userID uuid.UUID, slug string) (*model.Organization, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrSlugRequired
	}

	org, err := s.orgs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetOrganization(ctx, userID, &org.ID); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Leave(ctx context.Context, userID uuid.UUID) error {
	return s.users.SetOrganization(ctx, userID, nil)
}

// Mine returns the caller's organization with its counts, or nil when the
// caller has none.
func (s *OrganizationService) Mine(ctx context.Context, userID uuid.UUID) (*model.OrganizationSummary, error) {
	scope, err := s.ResolveScope(ctx, userID)
	if err != nil || scope == nil {
		return nil, err
	}

	summary, err := s.orgs.Summary(ctx, *scope)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return summary, nil
}

// ResolveScope returns the caller's current organization id, nil for none
func (s *OrganizationService) ResolveScope(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	return resolveScope(ctx, s.users, userID)
}

// IsMember reports whether the user currently belongs to orgID
func (s *OrganizationService) IsMember(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	scope, err := s.ResolveScope(ctx, userID)
	if err != nil {
		return false, err
	}
	return scope != nil && *scope == orgID, nil
}

// ListAccessPoints lists an organization's access points, newest first.
// Only members may list them.
func (s *OrganizationService) ListAccessPoints(ctx context.Context, userID uuid.UUID, slug string) ([]model.AccessPoint, error) {
	org, err := s.orgs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	member, err := s.IsMember(ctx, userID, org.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotOrganizationMember
	}

	return s.aps.ListByOrganization(ctx, org.ID)
}

type AuditLogQuery struct {
	AccessPointID *uuid.UUID
	Action        string
	Limit         int
	Offset        int
}

type AuditLogPage struct {
	Logs   []model.CredentialAuditLog `json:"logs"`
	Total  int64                      `json:"total"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

// ListAuditLogs pages through the credential audit trail of the caller's
// organization.
func (s *OrganizationService) ListAuditLogs(ctx context.Context, userID uuid.UUID, query AuditLogQuery) (*AuditLogPage, error) {
	scope, err := s.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, domain.ErrNoOrganization
	}

	if query.Limit <= 0 {
		query.Limit = defaultAuditLogLimit
	}
	if query.Limit > maxAuditLogLimit {
		query.Limit = maxAuditLogLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	logs, total, err := s.auditLogs.Query(ctx, repository.QueryParams{
		OrganizationID: *scope,
		AccessPointID:  query.AccessPointID,
		Action:         query.Action,
		Limit:          query.Limit,
		Offset:         query.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &AuditLogPage{Logs: logs, Total: total, Limit: query.Limit, Offset: query.Offset}, nil
}
