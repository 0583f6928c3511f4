package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/silinternational/cover-agri/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"claimEventType": validateClaimEventType,
	"claimStatus":    validateClaimStatus,
	"mediaType":      validateMediaType,
}

func validateModel(m any) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			vErrs.Add("struct", err.Error())
			return vErrs
		}
		for _, err := range fieldErrs {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// ValidateInput checks an api input struct against its validate tags, returning an AppError with the
// ErrorValidation key if anything is wrong.
func ValidateInput(input any) error {
	vErrs := validateModel(input)
	if !vErrs.HasAny() {
		return nil
	}
	return api.NewAppError(errors.New(flattenPopErrors(vErrs)), api.ErrorValidation, api.CategoryUser)
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	sort.Strings(msgs)
	msg := strings.Join(msgs, " |")
	return msg
}

func validateClaimEventType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimEventType); ok {
		_, valid := ValidClaimEventTypes[value]
		return valid
	}
	return false
}

func validateClaimStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimStatus); ok {
		_, valid := ValidClaimStatus[value]
		return valid
	}
	return false
}

func validateMediaType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.MediaType); ok {
		_, valid := ValidMediaTypes[value]
		return valid
	}
	return false
}

// eventLocationStructLevelValidation range-checks whichever coordinates are present
func eventLocationStructLevelValidation(sl validator.StructLevel) {
	loc, ok := sl.Current().Interface().(EventLocation)
	if !ok {
		return
	}
	if loc.Latitude.Valid && (loc.Latitude.Float64 < -90 || loc.Latitude.Float64 > 90) {
		sl.ReportError(loc.Latitude, "Latitude", "latitude", "latitude", "")
	}
	if loc.Longitude.Valid && (loc.Longitude.Float64 < -180 || loc.Longitude.Float64 > 180) {
		sl.ReportError(loc.Longitude, "Longitude", "longitude", "longitude", "")
	}
}
