package model

import "hostal/shared/model"

const (
	ClientTableName  = "clients"
	ClientEntityName = "client"

	ClientFieldID        = "id"
	ClientFieldFirstName = "first_name"
	ClientFieldLastName  = "last_name"
	ClientFieldSex       = "sex"
	ClientFieldEmail     = "email"
	ClientFieldPhone     = "phone"
)

// Client holds the guest contact details captured with a reservation. One row
// per reservation, no dedup across reservations.
type Client struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Sex       string `db:"sex"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	model.Metadata
}
