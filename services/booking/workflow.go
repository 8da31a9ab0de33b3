package booking

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"villafinder/models"

	"github.com/google/uuid"
)

// Step is a state of the booking form.
type Step string

const (
	StepPersonalInfo Step = "personal_info"
	StepPayment      Step = "payment"
)

// Workflow is an open booking form for one listing. The listing is fixed
// when the workflow opens.
type Workflow struct {
	Listing  models.Listing      `json:"listing"`
	Step     Step                `json:"step"`
	Draft    models.BookingDraft `json:"draft"`
	Errors   map[string]string   `json:"errors,omitempty"`
	CardHint string              `json:"cardHint,omitempty"` // masked card number, survives persistence
}

// MarshalJSON encodes the workflow without the card number and CVC. Those
// only live in memory for the request that submits them.
func (w Workflow) MarshalJSON() ([]byte, error) {
	type storedWorkflow Workflow
	s := storedWorkflow(w)
	s.Draft.CardNumber = ""
	s.Draft.CardCVC = ""
	return json.Marshal(s)
}

// Open starts an empty workflow for listing.
func Open(listing models.Listing) *Workflow {
	return &Workflow{
		Listing: listing,
		Step:    StepPersonalInfo,
		Draft: models.BookingDraft{
			PersonalInfo: models.PersonalInfo{Duration: 1},
			PaymentInfo:  models.PaymentInfo{PaymentMethod: models.PaymentCredit},
		},
	}
}

// Update applies changed fields and clears their errors.
func (w *Workflow) Update(u models.DraftUpdate) {
	d := &w.Draft
	set := func(name string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			w.clearError(name)
		}
	}
	set("firstName", &d.FirstName, u.FirstName)
	set("lastName", &d.LastName, u.LastName)
	set("email", &d.Email, u.Email)
	set("phone", &d.Phone, u.Phone)
	set("startDate", &d.StartDate, u.StartDate)
	set("paymentMethod", &d.PaymentMethod, u.PaymentMethod)
	set("cardNumber", &d.CardNumber, u.CardNumber)
	set("cardExpiry", &d.CardExpiry, u.CardExpiry)
	set("cardCVC", &d.CardCVC, u.CardCVC)
	if u.CardNumber != nil {
		w.CardHint = maskCard(*u.CardNumber)
	}
	if u.Duration != nil {
		d.Duration = *u.Duration
		w.clearError("duration")
	}
	if u.AgreeTerms != nil {
		d.AgreeTerms = *u.AgreeTerms
		w.clearError("agreeTerms")
	}
	w.clearError(FormErrorKey)
}

func (w *Workflow) clearError(field string) {
	delete(w.Errors, field)
	if len(w.Errors) == 0 {
		w.Errors = nil
	}
}

func (w *Workflow) setErrors(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		w.Errors = verr.Fields
		return
	}
	w.Errors = map[string]string{FormErrorKey: err.Error()}
}

// Next moves from personal info to payment when step one is valid.
func (w *Workflow) Next() error {
	if w.Step != StepPersonalInfo {
		return ErrWrongStep
	}
	if err := ValidatePersonal(w.Draft.PersonalInfo); err != nil {
		w.setErrors(err)
		return err
	}
	w.Errors = nil
	w.Step = StepPayment
	return nil
}

// Back returns to personal info keeping everything entered.
func (w *Workflow) Back() {
	w.Step = StepPersonalInfo
	w.Errors = nil
}

// Total is unit price times duration. It reports false when either is unusable.
func (w *Workflow) Total() (float64, bool) {
	return Total(w.Listing.Price, w.Draft.Duration)
}

// Total multiplies a monthly price by a duration from Durations.
func Total(price *float64, months int) (float64, bool) {
	if price == nil || !AllowedDuration(months) {
		return 0, false
	}
	return *price * float64(months), true
}

// Submit validates both steps and synthesizes the confirmation. On failure
// the draft is left untouched and the errors are recorded on the workflow.
func (w *Workflow) Submit(now time.Time, newID func() string) (*models.BookingConfirmation, error) {
	if w.Step != StepPayment {
		return nil, ErrWrongStep
	}
	if err := ValidatePayment(w.Draft.PaymentInfo); err != nil {
		w.setErrors(err)
		return nil, err
	}
	// Step one may only have been edited through Update; check it again.
	if err := ValidatePersonal(w.Draft.PersonalInfo); err != nil {
		w.Step = StepPersonalInfo
		w.setErrors(err)
		return nil, err
	}
	total, ok := w.Total()
	if !ok {
		w.Errors = map[string]string{FormErrorKey: MsgPriceUnavailable}
		return nil, ErrPriceUnavailable
	}
	if newID == nil {
		newID = NewBookingID
	}

	w.Errors = nil
	return &models.BookingConfirmation{
		BookingID:   newID(),
		Listing:     w.Listing,
		Draft:       redact(w.Draft),
		TotalPrice:  total,
		BookingDate: now.UTC(),
	}, nil
}

// NewBookingID returns a fresh unique booking identifier.
func NewBookingID() string {
	return "BK-" + strings.ToUpper(uuid.NewString())
}

// maskCard keeps only the last four digits of a card number.
func maskCard(number string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if digits == "" {
		return ""
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "**** " + digits
}

// redact keeps only the last four card digits in the confirmation.
func redact(d models.BookingDraft) models.BookingDraft {
	d.CardNumber = maskCard(d.CardNumber)
	d.CardCVC = ""
	return d
}
