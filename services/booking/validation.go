package booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"villafinder/models"

	"github.com/go-playground/validator/v10"
)

// Durations lists the month multipliers offered on the form.
var Durations = []int{1, 2, 3, 6, 12, 24}

// AllowedDuration reports whether months is one of Durations.
func AllowedDuration(months int) bool {
	for _, d := range Durations {
		if d == months {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

// rules are the custom validator tags used by the form models.
var rules = map[string]validator.Func{
	"basic_email": func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	},
	"duration_months": func(fl validator.FieldLevel) bool {
		return AllowedDuration(int(fl.Field().Int()))
	},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, rules)
	return v
}

// mustRegister panics when a rule cannot be registered.
func mustRegister(v *validator.Validate, rs map[string]validator.Func) {
	for tag, fn := range rs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("booking: register validation %q: %v", tag, err))
		}
	}
}

var messages = map[string]string{
	"firstName:required":       "First name is required",
	"lastName:required":        "Last name is required",
	"email:required":           "Email is required",
	"email:basic_email":        "Email is invalid",
	"phone:required":           "Phone number is required",
	"startDate:required":       "Start date is required",
	"duration:duration_months": "Duration must be 1, 2, 3, 6, 12 or 24 months",
	"paymentMethod:oneof":      "Select a payment method",
	"cardNumber:required_if":   "Card number is required",
	"cardExpiry:required_if":   "Expiry date is required",
	"cardCVC:required_if":      "CVC is required",
	"agreeTerms:required":      "You must agree to the terms",
}

func trimPersonal(p models.PersonalInfo) models.PersonalInfo {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.StartDate = strings.TrimSpace(p.StartDate)
	return p
}

func trimPayment(p models.PaymentInfo) models.PaymentInfo {
	p.CardNumber = strings.TrimSpace(p.CardNumber)
	p.CardExpiry = strings.TrimSpace(p.CardExpiry)
	p.CardCVC = strings.TrimSpace(p.CardCVC)
	return p
}

// ValidatePersonal checks step one. It returns nil or a *ValidationError.
func ValidatePersonal(p models.PersonalInfo) error {
	p = trimPersonal(p)
	fields := collect(validate.Struct(p))
	if _, flagged := fields["startDate"]; !flagged {
		if _, err := time.Parse("2006-01-02", p.StartDate); err != nil {
			fields["startDate"] = "Start date is invalid"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Step: StepPersonalInfo, Fields: fields}
	}
	return nil
}

// ValidatePayment checks step two. It returns nil or a *ValidationError.
func ValidatePayment(p models.PaymentInfo) error {
	fields := collect(validate.Struct(trimPayment(p)))
	if len(fields) > 0 {
		return &ValidationError{Step: StepPayment, Fields: fields}
	}
	return nil
}

func collect(err error) map[string]string {
	fields := map[string]string{}
	if err == nil {
		return fields
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields[FormErrorKey] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+":"+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields[fe.Field()] = msg
	}
	return fields
}
