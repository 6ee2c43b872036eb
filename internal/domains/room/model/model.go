package model

import (
	"hostal/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldNumber           = "number"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldPricePerNight    = "price_per_night"
	FieldBaseCapacity     = "base_capacity"
	FieldExtraCapacity    = "extra_capacity"
	FieldExtraGuestCharge = "extra_guest_charge"
	FieldRoomType         = "room_type"
	FieldAmenities        = "amenities"
	FieldStatus           = "status"
	FieldMainPhoto        = "main_photo"
	FieldAdditionalPhotos = "additional_photos"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

const (
	TypeIndividual   = "individual"
	TypeDouble       = "double"
	TypeSuite        = "suite"
	TypeFamily       = "family"
	TypePresidential = "presidential"
)

type Room struct {
	ID               string         `db:"id"`
	Number           string         `db:"number"`
	Name             string         `db:"name"`
	Description      string         `db:"description"`
	PricePerNight    float64        `db:"price_per_night"`
	BaseCapacity     int            `db:"base_capacity"`
	ExtraCapacity    int            `db:"extra_capacity"`
	ExtraGuestCharge float64        `db:"extra_guest_charge"`
	RoomType         string         `db:"room_type"`
	Amenities        types.JSONText `db:"amenities"`
	Status           string         `db:"status"`
	MainPhoto        string         `db:"main_photo"`
	AdditionalPhotos types.JSONText `db:"additional_photos"`
	model.Metadata
}

// Capacity returns the maximum number of guests the room can hold.
func (r *Room) Capacity() int {
	return r.BaseCapacity + r.ExtraCapacity
}
