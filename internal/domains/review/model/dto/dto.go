package dto

import (
	"hostal/internal/domains/review/model"
	"hostal/shared"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Country string `json:"country" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=5000"`
	Status  string `json:"status"  validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (c *CreateReviewRequest) ToModel(user string) model.Review {
	status := model.StatusActive
	if c.Status != "" {
		status = c.Status
	}

	return model.Review{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Country: c.Country,
		Content: c.Content,
		Status:  status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=255"`
	Country string `db:"country" json:"country" validate:"omitempty,max=255"`
	Content string `db:"content" json:"content" validate:"omitempty,max=5000"`
	Status  string `db:"status"  json:"status"  validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type ChangeReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

type AddReviewResponseRequest struct {
	Response string `json:"response" validate:"required,max=5000"`
}

type ReviewResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Content  string `json:"content"`
	Response string `json:"response,omitempty"`
	Status   string `json:"status"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(mod model.Review) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Country = mod.Country
	r.Content = mod.Content
	r.Response = mod.Response
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
