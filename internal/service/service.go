// internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// newValidator reports fields by their JSON names and knows the "slug" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateInput runs struct validation and turns failures into a single
// domain.ErrValidation with a readable message.
func validateInput(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.New(domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "slug":
		return field + " may only contain lowercase letters, numbers and hyphens"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// resolveScope returns the organization the user currently belongs to.
// Tokens may be stale, so membership is always read from the database.
func resolveScope(ctx context.Context, users repository.UserRepositoryIface, userID uuid.UUID) (*uuid.UUID, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.OrganizationID, nil
}

// publish sends an event to an organization channel. Delivery is best
// effort, so failures are only logged.
func publish(ctx context.Context, b realtime.Broadcaster, orgID *uuid.UUID, event string, payload interface{}) {
	if b == nil || orgID == nil {
		return
	}
	if err := b.Publish(ctx, *orgID, event, payload); err != nil {
		slog.WarnContext(ctx, "failed to publish realtime event", "event", event, "organization", orgID.String(), "error", err)
	}
}
