package model

import (
	"hostal/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID       = "id"
	FieldName     = "name"
	FieldCountry  = "country"
	FieldContent  = "content"
	FieldResponse = "response"
	FieldStatus   = "status"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Review struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Country  string `db:"country"`
	Content  string `db:"content"`
	Response string `db:"response"`
	Status   string `db:"status"`
	model.Metadata
}
