package model

import (
	"time"

	"hostal/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                    = "id"
	FieldReservationNumber     = "reservation_number"
	FieldRoomID                = "room_id"
	FieldClientID              = "client_id"
	FieldCheckInDate           = "check_in_date"
	FieldCheckOutDate          = "check_out_date"
	FieldBaseGuestsCount       = "base_guests_count"
	FieldExtraGuestsCount      = "extra_guests_count"
	FieldNotes                 = "notes"
	FieldAdditionalGuests      = "additional_guests"
	FieldEarlyCheckIn          = "early_check_in"
	FieldLateCheckOut          = "late_check_out"
	FieldStatus                = "status"
	FieldTotalPrice            = "total_price"
	FieldPaymentStatus         = "payment_status"
	FieldStripePaymentIntentID = "stripe_payment_intent_id"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusFinished  = "finished"
)

// PaymentStatusPaid is the free-text mirror stamped on the reservation when a
// payment provider reports a successful charge.
const PaymentStatusPaid = "paid"

type Reservation struct {
	ID                    string         `db:"id"`
	ReservationNumber     string         `db:"reservation_number"`
	RoomID                string         `db:"room_id"`
	ClientID              string         `db:"client_id"`
	CheckInDate           time.Time      `db:"check_in_date"`
	CheckOutDate          time.Time      `db:"check_out_date"`
	BaseGuestsCount       int            `db:"base_guests_count"`
	ExtraGuestsCount      int            `db:"extra_guests_count"`
	Notes                 string         `db:"notes"`
	AdditionalGuests      types.JSONText `db:"additional_guests"`
	EarlyCheckIn          bool           `db:"early_check_in"`
	LateCheckOut          bool           `db:"late_check_out"`
	Status                string         `db:"status"`
	TotalPrice            float64        `db:"total_price"`
	PaymentStatus         string         `db:"payment_status"`
	StripePaymentIntentID string         `db:"stripe_payment_intent_id"`
	model.Metadata
}
