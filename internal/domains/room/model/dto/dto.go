package dto

import (
	"encoding/json"
	"mime/multipart"

	"hostal/internal/domains/room/model"
	"hostal/shared"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type CreateRoomRequest struct {
	Number           string   `json:"number"             validate:"required,max=20"`
	Name             string   `json:"name"               validate:"required,max=100"`
	Description      string   `json:"description"        validate:"omitempty,max=1000"`
	PricePerNight    float64  `json:"price_per_night"    validate:"required,gt=0"`
	BaseCapacity     int      `json:"base_capacity"      validate:"required,min=1"`
	ExtraCapacity    int      `json:"extra_capacity"     validate:"omitempty,min=0"`
	ExtraGuestCharge float64  `json:"extra_guest_charge" validate:"omitempty,min=0"`
	RoomType         string   `json:"room_type"          validate:"required,oneof=individual double suite family presidential"`
	Amenities        []string `json:"amenities"          validate:"omitempty"`
	Status           string   `json:"status"             validate:"omitempty,oneof=available occupied maintenance"`

	MainPhoto            *multipart.FileHeader   `json:"-" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	MainPhotoFile        multipart.File          `json:"-"`
	AdditionalPhotos     []*multipart.FileHeader `json:"-"`
	AdditionalPhotoFiles []multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user, mainPhotoURL string, additionalPhotoURLs []string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	amenities, _ := json.Marshal(c.Amenities)
	photos, _ := json.Marshal(additionalPhotoURLs)

	return model.Room{
		ID:               uuid.NewString(),
		Number:           c.Number,
		Name:             c.Name,
		Description:      c.Description,
		PricePerNight:    c.PricePerNight,
		BaseCapacity:     c.BaseCapacity,
		ExtraCapacity:    c.ExtraCapacity,
		ExtraGuestCharge: c.ExtraGuestCharge,
		RoomType:         c.RoomType,
		Amenities:        types.JSONText(amenities),
		Status:           status,
		MainPhoto:        mainPhotoURL,
		AdditionalPhotos: types.JSONText(photos),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number           string   `db:"number"             json:"number"             validate:"omitempty,max=20"`
	Name             string   `db:"name"               json:"name"               validate:"omitempty,max=100"`
	Description      string   `db:"description"        json:"description"        validate:"omitempty,max=1000"`
	PricePerNight    *float64 `db:"price_per_night"    json:"price_per_night"    validate:"omitempty,gt=0"`
	BaseCapacity     *int     `db:"base_capacity"      json:"base_capacity"      validate:"omitempty,min=1"`
	ExtraCapacity    *int     `db:"extra_capacity"     json:"extra_capacity"     validate:"omitempty,min=0"`
	ExtraGuestCharge *float64 `db:"extra_guest_charge" json:"extra_guest_charge" validate:"omitempty,min=0"`
	RoomType         string   `db:"room_type"          json:"room_type"          validate:"omitempty,oneof=individual double suite family presidential"`
	Amenities        []string `json:"amenities"        validate:"omitempty"`

	MainPhoto     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	MainPhotoFile multipart.File        `json:"-"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance"`
}

type RoomResponse struct {
	ID               string   `json:"id"`
	Number           string   `json:"number"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PricePerNight    float64  `json:"price_per_night"`
	BaseCapacity     int      `json:"base_capacity"`
	ExtraCapacity    int      `json:"extra_capacity"`
	ExtraGuestCharge float64  `json:"extra_guest_charge"`
	RoomType         string   `json:"room_type"`
	Amenities        []string `json:"amenities"`
	Status           string   `json:"status"`
	MainPhoto        string   `json:"main_photo"`
	AdditionalPhotos []string `json:"additional_photos"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.Number = mod.Number
	r.Name = mod.Name
	r.Description = mod.Description
	r.PricePerNight = mod.PricePerNight
	r.BaseCapacity = mod.BaseCapacity
	r.ExtraCapacity = mod.ExtraCapacity
	r.ExtraGuestCharge = mod.ExtraGuestCharge
	r.RoomType = mod.RoomType
	r.Status = mod.Status
	r.MainPhoto = mod.MainPhoto
	r.Metadata.FromModel(mod.Metadata)

	if len(mod.Amenities) > 0 {
		_ = json.Unmarshal(mod.Amenities, &r.Amenities)
	}

	if len(mod.AdditionalPhotos) > 0 {
		_ = json.Unmarshal(mod.AdditionalPhotos, &r.AdditionalPhotos)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
