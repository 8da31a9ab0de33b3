// File: villafinder/models/booking.go
package models

import "time"

// Payment methods offered on the payment step.
const (
	PaymentCredit       = "credit"
	PaymentBankTransfer = "bank_transfer"
)

// PersonalInfo is step one of the booking form.
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,basic_email"`
	Phone     string `json:"phone" validate:"required"`
	StartDate string `json:"startDate" validate:"required"` // move-in date, YYYY-MM-DD
	Duration  int    `json:"duration" validate:"duration_months"`
}

// PaymentInfo is step two of the booking form.
type PaymentInfo struct {
	PaymentMethod string `json:"paymentMethod" validate:"oneof=credit bank_transfer"`
	CardNumber    string `json:"cardNumber" validate:"required_if=PaymentMethod credit"`
	CardExpiry    string `json:"cardExpiry" validate:"required_if=PaymentMethod credit"`
	CardCVC       string `json:"cardCVC" validate:"required_if=PaymentMethod credit"`
	AgreeTerms    bool   `json:"agreeTerms" validate:"required"`
}

// BookingDraft accumulates both steps while the user types.
type BookingDraft struct {
	PersonalInfo
	PaymentInfo
}

// DraftUpdate carries the fields changed by one edit. Nil fields are untouched.
type DraftUpdate struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	StartDate     *string `json:"startDate,omitempty"`
	Duration      *int    `json:"duration,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	CardNumber    *string `json:"cardNumber,omitempty"`
	CardExpiry    *string `json:"cardExpiry,omitempty"`
	CardCVC       *string `json:"cardCVC,omitempty"`
	AgreeTerms    *bool   `json:"agreeTerms,omitempty"`
}

// BookingConfirmation is synthesized locally once a booking is submitted.
type BookingConfirmation struct {
	BookingID   string       `json:"bookingId"`
	Listing     Listing      `json:"villa"`
	Draft       BookingDraft `json:"booking"`
	TotalPrice  float64      `json:"totalPrice"`
	BookingDate time.Time    `json:"bookingDate"`
}
