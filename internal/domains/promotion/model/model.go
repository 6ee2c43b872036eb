package model

import (
	"hostal/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldMinPeople    = "min_people"
	FieldMaxPeople    = "max_people"
	FieldTime         = "time"
	FieldService      = "service"
	FieldDescription  = "description"
	FieldCheckInTime  = "check_in_time"
	FieldCheckOutTime = "check_out_time"
	FieldPhoto        = "photo"
	FieldStatus       = "status"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Promotion struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	MinPeople    int    `db:"min_people"`
	MaxPeople    int    `db:"max_people"`
	Time         string `db:"time"`
	Service      string `db:"service"`
	Description  string `db:"description"`
	CheckInTime  string `db:"check_in_time"`
	CheckOutTime string `db:"check_out_time"`
	Photo        string `db:"photo"`
	Status       string `db:"status"`
	model.Metadata
}
