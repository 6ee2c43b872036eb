package dto

import (
	"mime/multipart"

	"hostal/internal/domains/promotion/model"
	"hostal/shared"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
)

type CreatePromotionRequest struct {
	Title        string `json:"title"          validate:"required,max=255"`
	MinPeople    int    `json:"min_people"     validate:"omitempty,min=0"`
	MaxPeople    int    `json:"max_people"     validate:"omitempty,min=0,gtefield=MinPeople"`
	Time         string `json:"time"           validate:"omitempty,max=100"`
	Service      string `json:"service"        validate:"omitempty,max=255"`
	Description  string `json:"description"    validate:"omitempty,max=2000"`
	CheckInTime  string `json:"check_in_time"  validate:"omitempty,max=10"`
	CheckOutTime string `json:"check_out_time" validate:"omitempty,max=10"`
	Status       string `json:"status"         validate:"omitempty,oneof=ACTIVE INACTIVE"`

	Photo     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	PhotoFile multipart.File        `json:"-"`
}

func (c *CreatePromotionRequest) ToModel(user, photoURL string) model.Promotion {
	status := model.StatusActive
	if c.Status != "" {
		status = c.Status
	}

	return model.Promotion{
		ID:           uuid.NewString(),
		Title:        c.Title,
		MinPeople:    c.MinPeople,
		MaxPeople:    c.MaxPeople,
		Time:         c.Time,
		Service:      c.Service,
		Description:  c.Description,
		CheckInTime:  c.CheckInTime,
		CheckOutTime: c.CheckOutTime,
		Photo:        photoURL,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePromotionRequest struct {
	Title        string `db:"title"          json:"title"          validate:"omitempty,max=255"`
	MinPeople    *int   `db:"min_people"     json:"min_people"     validate:"omitempty,min=0"`
	MaxPeople    *int   `db:"max_people"     json:"max_people"     validate:"omitempty,min=0"`
	Time         string `db:"time"           json:"time"           validate:"omitempty,max=100"`
	Service      string `db:"service"        json:"service"        validate:"omitempty,max=255"`
	Description  string `db:"description"    json:"description"    validate:"omitempty,max=2000"`
	CheckInTime  string `db:"check_in_time"  json:"check_in_time"  validate:"omitempty,max=10"`
	CheckOutTime string `db:"check_out_time" json:"check_out_time" validate:"omitempty,max=10"`
	Status       string `db:"status"         json:"status"         validate:"omitempty,oneof=ACTIVE INACTIVE"`

	Photo     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	PhotoFile multipart.File        `json:"-"`
}

type PromotionResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MinPeople    int    `json:"min_people"`
	MaxPeople    int    `json:"max_people"`
	Time         string `json:"time"`
	Service      string `json:"service"`
	Description  string `json:"description"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
	Photo        string `json:"photo"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (p *PromotionResponse) FromModel(mod model.Promotion) {
	p.ID = mod.ID
	p.Title = mod.Title
	p.MinPeople = mod.MinPeople
	p.MaxPeople = mod.MaxPeople
	p.Time = mod.Time
	p.Service = mod.Service
	p.Description = mod.Description
	p.CheckInTime = mod.CheckInTime
	p.CheckOutTime = mod.CheckOutTime
	p.Photo = mod.Photo
	p.Status = mod.Status
	p.Metadata.FromModel(mod.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, mod := range models {
		r.Promotions[i].FromModel(mod)
	}
}
