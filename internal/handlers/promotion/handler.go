package promotion

import (
	"net/http"

	"hostal/infras/otel"
	"hostal/internal/domains/promotion/model"
	"hostal/internal/domains/promotion/model/dto"
	"hostal/internal/domains/promotion/service"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	"hostal/shared/validator"
	"hostal/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Promotion
	otel    otel.Otel
}

func New(service service.Promotion, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/promotions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePromotion)
		routerGroup.Get("/", handler.GetPromotions)
		routerGroup.Get("/{id}", handler.GetPromotionByID)
		routerGroup.Patch("/{id}", handler.UpdatePromotion)
		routerGroup.Delete("/{id}", handler.DeletePromotion)
	})
}

// CreatePromotion handles the creation of a new promotion.
// @Summary Create a new promotion
// @Description Create a new promotion with an optional photo uploaded to object storage.
// @Tags Promotion
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Promotion title"
// @Param min_people formData integer false "Minimum people"
// @Param max_people formData integer false "Maximum people"
// @Param time formData string false "Promotion time window"
// @Param service formData string false "Included service"
// @Param description formData string false "Description"
// @Param check_in_time formData string false "Check-in time"
// @Param check_out_time formData string false "Check-out time"
// @Param status formData string false "Status"
// @Param photo formData file false "Promotion photo"
// @Success 201 {object} response.Message "Promotion created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions [post]
// @Security BearerAuth
func (handler *Handler) CreatePromotion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromotion")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreatePromotionRequest{
		Title:        request.FormValue("title"),
		Time:         request.FormValue("time"),
		Service:      request.FormValue("service"),
		Description:  request.FormValue("description"),
		CheckInTime:  request.FormValue("check_in_time"),
		CheckOutTime: request.FormValue("check_out_time"),
		Status:       request.FormValue("status"),
	}

	if minStr := request.FormValue("min_people"); minStr != "" {
		if minPeople, err := shared.ConvertStringToInt(minStr); err == nil {
			req.MinPeople = minPeople
		}
	}

	if maxStr := request.FormValue("max_people"); maxStr != "" {
		if maxPeople, err := shared.ConvertStringToInt(maxStr); err == nil {
			req.MaxPeople = maxPeople
		}
	}

	file, fileHeader, err := request.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promotion")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Promotion created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Promotion created successfully")
}

// GetPromotions retrieves all promotions based on query parameters.
// @Summary Get all promotions
// @Description Retrieve all promotions with optional filtering and pagination.
// @Tags Promotion
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetPromotionsResponse] "List of promotions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions [get]
func (handler *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTitle,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldTitle),
				Table:    model.TableName,
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	promotions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promotions retrieved successfully")

	response.WithJSON(w, http.StatusOK, promotions)
}

// GetPromotionByID retrieves a promotion by its ID.
// @Summary Get a promotion by ID
// @Description Retrieve a promotion by its unique identifier.
// @Tags Promotion
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Data[dto.PromotionResponse] "Promotion details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [get]
func (handler *Handler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	promotion, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotion by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promotion retrieved successfully")

	response.WithJSON(w, http.StatusOK, promotion)
}

// UpdatePromotion updates an existing promotion by its ID.
// @Summary Update a promotion by ID
// @Description Update the details of an existing promotion.
// @Tags Promotion
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Promotion ID"
// @Param title formData string false "Promotion title"
// @Param min_people formData integer false "Minimum people"
// @Param max_people formData integer false "Maximum people"
// @Param time formData string false "Promotion time window"
// @Param service formData string false "Included service"
// @Param description formData string false "Description"
// @Param check_in_time formData string false "Check-in time"
// @Param check_out_time formData string false "Check-out time"
// @Param status formData string false "Status"
// @Param photo formData file false "Promotion photo"
// @Success 200 {object} response.Message "Promotion updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdatePromotionRequest{
		Title:        r.FormValue("title"),
		Time:         r.FormValue("time"),
		Service:      r.FormValue("service"),
		Description:  r.FormValue("description"),
		CheckInTime:  r.FormValue("check_in_time"),
		CheckOutTime: r.FormValue("check_out_time"),
		Status:       r.FormValue("status"),
	}

	if minStr := r.FormValue("min_people"); minStr != "" {
		if minPeople, err := shared.ConvertStringToInt(minStr); err == nil {
			req.MinPeople = &minPeople
		}
	}

	if maxStr := r.FormValue("max_people"); maxStr != "" {
		if maxPeople, err := shared.ConvertStringToInt(maxStr); err == nil {
			req.MaxPeople = &maxPeople
		}
	}

	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update promotion")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Promotion updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Promotion updated successfully")
}

// DeletePromotion deletes a promotion by its ID.
// @Summary Delete a promotion by ID
// @Description Delete a promotion and its stored photo.
// @Tags Promotion
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Message "Promotion deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete promotion")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Promotion deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Promotion deleted successfully")
}
