package validation

import (
	"reflect"
	"regexp"
	"strings"

	"charity-transparency/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var instance *Validator

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a validator with the custom money, slug and status rules.
// decimal.Decimal fields are validated as float64 so numeric tags such as
// gt=0 work on them.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("slug", validateSlug)
	_ = v.RegisterValidation("donation_status", validateDonationStatus)
	_ = v.RegisterValidation("phone", validatePhone)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func decimalValue(field reflect.Value) interface{} {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := value.Float64()
		return f
	case decimal.NullDecimal:
		if !value.Valid {
			return nil
		}
		f, _ := value.Decimal.Float64()
		return f
	}
	return nil
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

// validateMoney accepts non-negative amounts with at most two decimal places
func validateMoney(fl validator.FieldLevel) bool {
	var amount decimal.Decimal
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		amount = decimal.NewFromFloat(fl.Field().Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		amount = decimal.NewFromInt(fl.Field().Int())
	case reflect.String:
		parsed, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		amount = parsed
	default:
		return false
	}

	if amount.IsNegative() {
		return false
	}
	return amount.Equal(amount.Truncate(2))
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateDonationStatus(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case models.DonationStatusPending, models.DonationStatusConfirmed, models.DonationStatusRejected:
		return true
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
