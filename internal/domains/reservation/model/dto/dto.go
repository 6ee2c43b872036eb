package dto

import (
	"encoding/json"
	"time"

	"hostal/internal/domains/reservation/model"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type AdditionalGuest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Age      int    `json:"age"       validate:"omitempty,min=0,max=120"`
}

type ClientRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Sex       string `json:"sex"        validate:"omitempty,oneof=M F otro"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"omitempty,max=30"`
}

func (c *ClientRequest) ToModel(user string) model.Client {
	return model.Client{
		ID:        uuid.NewString(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Sex:       c.Sex,
		Email:     c.Email,
		Phone:     c.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateReservationRequest struct {
	RoomID           string            `json:"room_id"            validate:"required,uuid"`
	Client           ClientRequest     `json:"client"             validate:"required"`
	CheckInDate      string            `json:"check_in_date"      validate:"required,datetime=2006-01-02"`
	CheckOutDate     string            `json:"check_out_date"     validate:"required,datetime=2006-01-02"`
	BaseGuestsCount  int               `json:"base_guests_count"  validate:"required,min=1"`
	ExtraGuestsCount int               `json:"extra_guests_count" validate:"omitempty,min=0"`
	Notes            string            `json:"notes"              validate:"omitempty,max=1000"`
	AdditionalGuests []AdditionalGuest `json:"additional_guests"  validate:"omitempty,dive"`
	EarlyCheckIn     bool              `json:"early_check_in"`
	LateCheckOut     bool              `json:"late_check_out"`
}

// Dates parses the calendar-date fields in the application timezone.
func (c *CreateReservationRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, err //nolint:wrapcheck
	}

	checkOut, err = timezone.Parse(constant.DateOnlyFormat, c.CheckOutDate)

	return checkIn, checkOut, err //nolint:wrapcheck
}

func (c *CreateReservationRequest) ToModel(user, reservationNumber, clientID string, totalPrice float64, checkIn, checkOut time.Time) model.Reservation {
	guests, _ := json.Marshal(c.AdditionalGuests)

	return model.Reservation{
		ID:                uuid.NewString(),
		ReservationNumber: reservationNumber,
		RoomID:            c.RoomID,
		ClientID:          clientID,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		BaseGuestsCount:   c.BaseGuestsCount,
		ExtraGuestsCount:  c.ExtraGuestsCount,
		Notes:             c.Notes,
		AdditionalGuests:  types.JSONText(guests),
		EarlyCheckIn:      c.EarlyCheckIn,
		LateCheckOut:      c.LateCheckOut,
		Status:            model.StatusPending,
		TotalPrice:        totalPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReservationRequest struct {
	CheckInDate      string            `json:"check_in_date"      validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate     string            `json:"check_out_date"     validate:"omitempty,datetime=2006-01-02"`
	BaseGuestsCount  *int              `json:"base_guests_count"  validate:"omitempty,min=1"`
	ExtraGuestsCount *int              `json:"extra_guests_count" validate:"omitempty,min=0"`
	Notes            string            `db:"notes"                json:"notes" validate:"omitempty,max=1000"`
	AdditionalGuests []AdditionalGuest `json:"additional_guests"  validate:"omitempty,dive"`
	EarlyCheckIn     *bool             `json:"early_check_in"`
	LateCheckOut     *bool             `json:"late_check_out"`
	Status           string            `db:"status"               json:"status" validate:"omitempty,oneof=pending confirmed cancelled finished"`
}

type ClientResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Sex       string `json:"sex"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c *ClientResponse) FromModel(mod model.Client) {
	c.ID = mod.ID
	c.FirstName = mod.FirstName
	c.LastName = mod.LastName
	c.Sex = mod.Sex
	c.Email = mod.Email
	c.Phone = mod.Phone
}

type ReservationResponse struct {
	ID                    string            `json:"id"`
	ReservationNumber     string            `json:"reservation_number"`
	RoomID                string            `json:"room_id"`
	Client                ClientResponse    `json:"client"`
	CheckInDate           string            `json:"check_in_date"`
	CheckOutDate          string            `json:"check_out_date"`
	BaseGuestsCount       int               `json:"base_guests_count"`
	ExtraGuestsCount      int               `json:"extra_guests_count"`
	Notes                 string            `json:"notes"`
	AdditionalGuests      []AdditionalGuest `json:"additional_guests"`
	EarlyCheckIn          bool              `json:"early_check_in"`
	LateCheckOut          bool              `json:"late_check_out"`
	Status                string            `json:"status"`
	TotalPrice            float64           `json:"total_price"`
	PaymentStatus         string            `json:"payment_status"`
	StripePaymentIntentID string            `json:"stripe_payment_intent_id,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.ReservationNumber = mod.ReservationNumber
	r.RoomID = mod.RoomID
	r.Client.ID = mod.ClientID
	r.CheckInDate = timezone.Format(mod.CheckInDate, constant.DateOnlyFormat)
	r.CheckOutDate = timezone.Format(mod.CheckOutDate, constant.DateOnlyFormat)
	r.BaseGuestsCount = mod.BaseGuestsCount
	r.ExtraGuestsCount = mod.ExtraGuestsCount
	r.Notes = mod.Notes
	r.EarlyCheckIn = mod.EarlyCheckIn
	r.LateCheckOut = mod.LateCheckOut
	r.Status = mod.Status
	r.TotalPrice = mod.TotalPrice
	r.PaymentStatus = mod.PaymentStatus
	r.StripePaymentIntentID = mod.StripePaymentIntentID
	r.Metadata.FromModel(mod.Metadata)

	if len(mod.AdditionalGuests) > 0 {
		_ = json.Unmarshal(mod.AdditionalGuests, &r.AdditionalGuests)
	}
}

func (r *ReservationResponse) FromModels(reservation model.Reservation, client model.Client) {
	r.FromModel(reservation)
	r.Client.FromModel(client)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// CreateReservationResponse is returned by the create endpoints; CheckoutURL
// is only set by the with-payment variant.
type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	CheckoutURL string              `json:"checkout_url,omitempty"`
	SessionID   string              `json:"session_id,omitempty"`
}

// OccupiedDatesResponse maps a room id to the sorted list of dates on which
// the room is taken by a pending or confirmed reservation.
type OccupiedDatesResponse struct {
	OccupiedDates map[string][]string `json:"occupied_dates"`
}

type RoomOccupiedDatesResponse struct {
	RoomID        string   `json:"room_id"`
	OccupiedDates []string `json:"occupied_dates"`
}

type SessionStatusResponse struct {
	SessionID         string `json:"session_id"`
	ReservationStatus string `json:"reservation_status"`
	PaymentStatus     string `json:"payment_status"`
}
