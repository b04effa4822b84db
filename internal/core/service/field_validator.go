package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

// Accepted plate formats: ABC-1234 or ABC1234 (3 letters, 3-4 digits).
// Plates are uppercased before this pattern is applied, so near-duplicates
// differing only in case collapse to the same stored value.
var plateRE = regexp.MustCompile(`^[A-Z]{3}-?[0-9]{3,4}$`)

// FieldValidator normalizes and checks vehicle fields. All field failures are
// accumulated, never short-circuited, so the caller sees every problem at once.
type FieldValidator struct {
	v *validator.Validate
}

func NewFieldValidator() *FieldValidator {
	v := validator.New()
	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return plateRE.MatchString(fl.Field().String())
	})
	return &FieldValidator{v: v}
}

// ValidateCreate normalizes in in place and checks the create-mode rules:
// every field required, status defaulting to Active when absent.
func (f *FieldValidator) ValidateCreate(in *ports.CreateVehicleInput) error {
	in.Plate = strings.ToUpper(strings.TrimSpace(in.Plate))
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.Color = strings.TrimSpace(in.Color)
	if in.Status == "" {
		in.Status = domain.StatusActive
	}
	return f.translate(f.v.Struct(in))
}

// ValidateUpdate normalizes the supplied fields in place and checks them with
// the same per-field rules; nil fields mean "leave unchanged" and are skipped.
func (f *FieldValidator) ValidateUpdate(in *ports.UpdateVehicleInput) error {
	if in.Plate != nil {
		*in.Plate = strings.ToUpper(strings.TrimSpace(*in.Plate))
	}
	if in.Make != nil {
		*in.Make = strings.TrimSpace(*in.Make)
	}
	if in.Model != nil {
		*in.Model = strings.TrimSpace(*in.Model)
	}
	if in.Color != nil {
		*in.Color = strings.TrimSpace(*in.Color)
	}
	return f.translate(f.v.Struct(in))
}

func (f *FieldValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Field:  strings.ToLower(fe.Field()),
			Reason: fieldReason(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldReason converts a single validation error into a human-readable message.
func fieldReason(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "plate":
		return field + " must match format ABC-1234 or ABC1234"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
