package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"time"

	"hostal/config"
	"hostal/infras/otel"
	stripeInfra "hostal/infras/stripe"
	payDto "hostal/internal/domains/payment/model/dto"
	paySvc "hostal/internal/domains/payment/service"
	"hostal/internal/domains/reservation/model"
	"hostal/internal/domains/reservation/model/dto"
	"hostal/internal/domains/reservation/pricing"
	"hostal/internal/domains/reservation/repository"
	roomModel "hostal/internal/domains/room/model"
	roomRepo "hostal/internal/domains/room/repository"
	"hostal/shared"
	"hostal/shared/cache"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	"hostal/shared/failure"
	"hostal/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	reservationNumberPrefix       = "R"
	reservationNumberSuffixLength = 6
	reservationNumberCharset      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	CreateWithPayment(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetSessionStatus(ctx context.Context, sessionID string) (dto.SessionStatusResponse, error)
	GetOccupiedDates(ctx context.Context) (dto.OccupiedDatesResponse, error)
	GetRoomOccupiedDates(ctx context.Context, roomID string) (dto.RoomOccupiedDatesResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepo.Room
	payment  paySvc.Payment
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	stripe   stripeInfra.Stripe
}

func New(repo repository.Reservation, roomRepo roomRepo.Room, payment paySvc.Payment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, stripe stripeInfra.Stripe) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		payment:  payment,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		stripe:   stripe,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString("invalid reservation dates") //nolint:wrapcheck
	}

	room, err := s.getRoom(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if err = pricing.ValidateCapacity(room.BaseCapacity, room.ExtraCapacity, req.BaseGuestsCount, req.ExtraGuestsCount); err != nil {
		return res, err
	}

	_, totalPrice, err := pricing.Quote(room.PricePerNight, room.ExtraGuestCharge, checkIn, checkOut, req.ExtraGuestsCount)
	if err != nil {
		return res, err
	}

	existing, err := s.activeStays(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	requested := pricing.Stay{
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		EarlyCheckIn: req.EarlyCheckIn,
		LateCheckOut: req.LateCheckOut,
	}

	if err = pricing.CheckTurnoverConflict(requested, existing); err != nil {
		return res, err
	}

	number, err := generateReservationNumber()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate reservation number")

		return res, fmt.Errorf("failed to generate reservation number: %w", err)
	}

	client := req.Client.ToModel(user)
	reservation := req.ToModel(user, number, client.ID, totalPrice, checkIn, checkOut)

	if err = s.repo.CreateWithClient(ctx, reservation, client); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModels(reservation, client)

	return res, nil
}

// CreateWithPayment creates the reservation and immediately opens a Stripe
// checkout session for its total price.
func (s *serviceImpl) CreateWithPayment(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateWithPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.Create(ctx, req)
	if err != nil {
		return res, err
	}

	session, err := s.payment.CreateCheckoutSession(ctx, payDto.CreateCheckoutSessionRequest{
		ReservationID: reservation.ID,
	})
	if err != nil {
		return res, err
	}

	res.Reservation = reservation
	res.CheckoutURL = session.CheckoutURL
	res.SessionID = session.SessionID

	return res, nil
}

func (s *serviceImpl) getRoom(ctx context.Context, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") //nolint:wrapcheck
	}

	return room, nil
}

// activeStays returns the date ranges of the room's pending and confirmed
// reservations, the set the turnover-conflict check runs against.
func (s *serviceImpl) activeStays(ctx context.Context, roomID string, excludeIDs ...string) ([]pricing.Stay, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []string{model.StatusPending, model.StatusConfirmed},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active reservations for room")

		return nil, fmt.Errorf("failed to get active reservations for room: %w", err)
	}

	stays := make([]pricing.Stay, 0, len(reservations))

	for _, reservation := range reservations {
		if slices.Contains(excludeIDs, reservation.ID) {
			continue
		}

		stays = append(stays, pricing.Stay{
			CheckIn:      reservation.CheckInDate,
			CheckOut:     reservation.CheckOutDate,
			EarlyCheckIn: reservation.EarlyCheckIn,
			LateCheckOut: reservation.LateCheckOut,
		})
	}

	return stays, nil
}

func generateReservationNumber() (string, error) {
	suffix := make([]byte, reservationNumberSuffixLength)

	for i := range suffix {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(reservationNumberCharset))))
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to read random bytes: %w", err)
		}

		suffix[i] = reservationNumberCharset[idx.Int64()]
	}

	datePart := timezone.Now().Format("20060102")

	return fmt.Sprintf("%s-%s-%s", reservationNumberPrefix, datePart, string(suffix)), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	client, err := s.repo.GetClient(ctx, reservation.ClientID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation client")

		return res, fmt.Errorf("failed to get reservation client: %w", err)
	}

	res.FromModels(reservation, client)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// GetSessionStatus reports where a Stripe checkout session stands, for the
// browser polling after the redirect flow.
func (s *serviceImpl) GetSessionStatus(ctx context.Context, sessionID string) (res dto.SessionStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSessionStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("failed to retrieve checkout session")

		return res, failure.ExternalProvider("failed to retrieve checkout session from payment provider") //nolint:wrapcheck
	}

	res.SessionID = session.ID
	res.PaymentStatus = string(session.PaymentStatus)

	reservationID := session.Metadata["reservationId"]
	if reservationID != constant.Empty {
		reservation, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservation for session")

			return res, fmt.Errorf("failed to get reservation for session: %w", err)
		}

		res.ReservationStatus = reservation.Status
	}

	return res, nil
}

// GetOccupiedDates lists, per room, every date taken by a pending or
// confirmed reservation. Check-in day counts as occupied, check-out day does
// not (the room turns over that day).
func (s *serviceImpl) GetOccupiedDates(ctx context.Context) (res dto.OccupiedDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOccupiedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservations, err := s.activeReservations(ctx, constant.Empty)
	if err != nil {
		return res, err
	}

	res.OccupiedDates = map[string][]string{}

	for roomID, dates := range collectOccupiedDates(reservations) {
		res.OccupiedDates[roomID] = dates
	}

	return res, nil
}

func (s *serviceImpl) GetRoomOccupiedDates(ctx context.Context, roomID string) (res dto.RoomOccupiedDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomOccupiedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getRoom(ctx, roomID); err != nil {
		return res, err
	}

	reservations, err := s.activeReservations(ctx, roomID)
	if err != nil {
		return res, err
	}

	res.RoomID = roomID
	res.OccupiedDates = []string{}

	if dates, ok := collectOccupiedDates(reservations)[roomID]; ok {
		res.OccupiedDates = dates
	}

	return res, nil
}

func (s *serviceImpl) activeReservations(ctx context.Context, roomID string) ([]model.Reservation, error) {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    []string{model.StatusPending, model.StatusConfirmed},
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
	}

	if roomID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}

	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active reservations")

		return nil, fmt.Errorf("failed to get active reservations: %w", err)
	}

	return reservations, nil
}

func collectOccupiedDates(reservations []model.Reservation) map[string][]string {
	perRoom := map[string]map[string]struct{}{}

	for _, reservation := range reservations {
		if perRoom[reservation.RoomID] == nil {
			perRoom[reservation.RoomID] = map[string]struct{}{}
		}

		for day := reservation.CheckInDate; day.Before(reservation.CheckOutDate); day = day.AddDate(0, 0, 1) {
			perRoom[reservation.RoomID][day.Format(constant.DateOnlyFormat)] = struct{}{}
		}
	}

	result := make(map[string][]string, len(perRoom))

	for roomID, dates := range perRoom {
		sorted := make([]string, 0, len(dates))
		for date := range dates {
			sorted = append(sorted, date)
		}

		slices.Sort(sorted)
		result[roomID] = sorted
	}

	return result
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	checkIn, checkOut, err := resolveDates(req, current)
	if err != nil {
		return failure.BadRequestFromString("invalid reservation dates") //nolint:wrapcheck
	}

	baseGuests := current.BaseGuestsCount
	if req.BaseGuestsCount != nil {
		baseGuests = *req.BaseGuestsCount
	}

	extraGuests := current.ExtraGuestsCount
	if req.ExtraGuestsCount != nil {
		extraGuests = *req.ExtraGuestsCount
	}

	earlyCheckIn := current.EarlyCheckIn
	if req.EarlyCheckIn != nil {
		earlyCheckIn = *req.EarlyCheckIn
	}

	lateCheckOut := current.LateCheckOut
	if req.LateCheckOut != nil {
		lateCheckOut = *req.LateCheckOut
	}

	room, err := s.getRoom(ctx, current.RoomID)
	if err != nil {
		return err
	}

	if err = pricing.ValidateCapacity(room.BaseCapacity, room.ExtraCapacity, baseGuests, extraGuests); err != nil {
		return err
	}

	_, totalPrice, err := pricing.Quote(room.PricePerNight, room.ExtraGuestCharge, checkIn, checkOut, extraGuests)
	if err != nil {
		return err
	}

	existing, err := s.activeStays(ctx, current.RoomID, current.ID)
	if err != nil {
		return err
	}

	requested := pricing.Stay{
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		EarlyCheckIn: earlyCheckIn,
		LateCheckOut: lateCheckOut,
	}

	if err = pricing.CheckTurnoverConflict(requested, existing); err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldCheckInDate:      checkIn,
		model.FieldCheckOutDate:     checkOut,
		model.FieldBaseGuestsCount:  baseGuests,
		model.FieldExtraGuestsCount: extraGuests,
		model.FieldEarlyCheckIn:     earlyCheckIn,
		model.FieldLateCheckOut:     lateCheckOut,
		model.FieldTotalPrice:       totalPrice,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    user,
	}

	if req.Notes != constant.Empty {
		updatedFields[model.FieldNotes] = req.Notes
	}

	if req.Status != constant.Empty {
		updatedFields[model.FieldStatus] = req.Status
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func resolveDates(req dto.UpdateReservationRequest, current model.Reservation) (checkIn, checkOut time.Time, err error) {
	checkIn = current.CheckInDate
	if req.CheckInDate != constant.Empty {
		checkIn, err = timezone.Parse(constant.DateOnlyFormat, req.CheckInDate)
		if err != nil {
			return checkIn, checkOut, err //nolint:wrapcheck
		}
	}

	checkOut = current.CheckOutDate
	if req.CheckOutDate != constant.Empty {
		checkOut, err = timezone.Parse(constant.DateOnlyFormat, req.CheckOutDate)
	}

	return checkIn, checkOut, err //nolint:wrapcheck
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if err = s.repo.DeleteWithClient(ctx, current.ID, current.ClientID); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}
