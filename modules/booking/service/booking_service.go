package service

import (
	"context"
	"strings"
	"time"

	"creator-ledger/core/constants"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/policy"
	"creator-ledger/core/utils"
	availEntity "creator-ledger/modules/availability/entity"
	"creator-ledger/modules/booking/dto"
	"creator-ledger/modules/booking/entity"
	"creator-ledger/modules/booking/repository"
	"creator-ledger/modules/booking/settlement"
	notifDto "creator-ledger/modules/notification/dto"
	notifEntity "creator-ledger/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SettingsReader interface {
	GetSettings(ctx context.Context, creatorID string) (*availEntity.SessionSettings, error)
}

type Notifier interface {
	Create(ctx context.Context, req *notifDto.CreateNotificationRequest) error
}

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, *errors.AppError)
	GetBooking(ctx context.Context, id string) (*dto.BookingResponse, *errors.AppError)
	CompleteBooking(ctx context.Context, id string) (*dto.BookingResponse, *errors.AppError)
}

type BookingService struct {
	repo     repository.BookingRepositoryInterface
	settings SettingsReader
	settler  settlement.Settler
	notifier Notifier
	policy   policy.Policy
	now      func() time.Time
}

func NewBookingService(
	repo repository.BookingRepositoryInterface,
	settings SettingsReader,
	settler settlement.Settler,
	notifier Notifier,
	p policy.Policy,
	now func() time.Time,
) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		repo:     repo,
		settings: settings,
		settler:  settler,
		notifier: notifier,
		policy:   p,
		now:      now,
	}
}

// CreateBooking validates the selection, prices it, registers the booking and settles payment.
// Registration failures fall back to a deterministic local id; settlement failures abort and
// leave any registered booking pending.
func (s *BookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, *errors.AppError) {
	creatorID := strings.TrimSpace(req.CreatorID)

	var settings *availEntity.SessionSettings
	settingsLoaded := false
	loadSettings := func() *errors.AppError {
		if settingsLoaded || creatorID == "" {
			return nil
		}
		settingsLoaded = true
		var err error
		if settings, err = s.settings.GetSettings(ctx, creatorID); err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to load creator session settings", err)
		}
		return nil
	}

	creatorAddr := strings.TrimSpace(req.CreatorAddr)
	if creatorAddr == "" {
		if appErr := loadSettings(); appErr != nil {
			return nil, appErr
		}
		if settings != nil {
			creatorAddr = settings.CreatorAddr
		}
	}
	if !utils.IsWalletAddress(creatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}
	creatorAddr = utils.NormalizeAddress(creatorAddr)

	slotMinutes := s.policy.SlotCadenceMinutes
	slots, err := NormalizeSlots(req.Slots, slotMinutes)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if len(slots) == 0 {
		return nil, errors.NewAppError(errors.ErrNoSlotsSelected, "select at least one slot", nil)
	}

	kind, ok := availEntity.ParseSessionKind(req.Kind)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "kind must be voice or video", nil)
	}
	day, err := availEntity.ParseWeekday(req.Day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if !utils.IsWalletAddress(req.ParticipantAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "participant address must be 40 hex characters", nil)
	}
	participantAddr := utils.NormalizeAddress(req.ParticipantAddr)

	date := NextOccurrence(s.now(), day)
	startsAt, err := StartsAt(date, slots[0])
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	if creatorID == "" {
		creatorID = creatorAddr
	}
	if appErr := loadSettings(); appErr != nil {
		return nil, appErr
	}
	price, appErr := s.sessionPrice(req.PricePerSessionUSD, settings, kind, slotMinutes)
	if appErr != nil {
		return nil, appErr
	}

	total := SessionTotal(price, len(slots))
	booking := &entity.Booking{
		CreatorID:       creatorID,
		CreatorAddr:     creatorAddr,
		ParticipantAddr: participantAddr,
		Kind:            string(kind),
		Slots:           slots,
		SlotMinutes:     slotMinutes,
		StartsAt:        startsAt,
		TotalCents:      total.Shift(2).IntPart(),
		Status:          entity.StatusPending,
	}

	bookingID, fallback := s.register(ctx, booking, date)

	txHash, err := s.settler.PaySession(ctx, bookingID, creatorAddr, total)
	if err != nil {
		metrics.SettlementFailures.Inc()
		logger.Error("BookingService:CreateBooking:PaySession", "booking_id", bookingID, "error", err)
		return nil, errors.NewAppError(errors.ErrSettlementFailed, "payment could not be settled, please try again", err)
	}

	if !fallback {
		markCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
		if err := s.repo.MarkPaid(markCtx, bookingID, txHash); err != nil {
			logger.Warn("BookingService:CreateBooking:MarkPaid", "booking_id", bookingID, "error", err)
		}
		cancel()
	}

	s.notify(ctx, &notifDto.CreateNotificationRequest{
		UserAddr: creatorAddr,
		Title:    "New session booked",
		Message:  "A " + string(kind) + " session was booked for " + startsAt.Format("Mon Jan 2 15:04"),
		Type:     notifEntity.TypeBookingPaid,
		Data: map[string]interface{}{
			"bookingId":   bookingID,
			"participant": participantAddr,
			"totalUsd":    total.StringFixed(2),
			"txHash":      txHash,
		},
	})

	logger.Info("BookingService:CreateBooking:Success",
		"booking_id", bookingID, "creator_addr", creatorAddr, "slots", len(slots), "total_usd", total.StringFixed(2))

	return &dto.CreateBookingResponse{
		BookingID: bookingID,
		TotalUSD:  total.StringFixed(2),
		StartsAt:  startsAt,
		TxHash:    txHash,
		Fallback:  fallback,
	}, nil
}

func (s *BookingService) sessionPrice(explicit string, settings *availEntity.SessionSettings, kind availEntity.SessionKind, slotMinutes int) (decimal.Decimal, *errors.AppError) {
	var price decimal.Decimal
	switch {
	case strings.TrimSpace(explicit) != "":
		p, err := decimal.NewFromString(strings.TrimSpace(explicit))
		if err != nil {
			return decimal.Zero, errors.NewAppError(errors.ErrInvalidInput, "pricePerSessionUsd is not a valid amount", err)
		}
		price = p
	case settings != nil:
		price = settings.SessionPrice(kind, slotMinutes)
	default:
		return decimal.Zero, errors.NewAppError(errors.ErrInvalidInput, "creator has no session pricing", nil)
	}
	if !price.IsPositive() {
		return decimal.Zero, errors.NewAppError(errors.ErrInvalidInput, "session price must be positive", nil)
	}
	return price, nil
}

// register persists the booking. Any failure yields the fallback id and is not fatal.
func (s *BookingService) register(ctx context.Context, booking *entity.Booking, date time.Time) (string, bool) {
	regCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	id, err := s.repo.Create(regCtx, booking)
	if err == nil && id != "" {
		metrics.BookingsCreated.WithLabelValues("registered").Inc()
		return id, false
	}

	id = FallbackID(booking.CreatorID, availEntity.SessionKind(booking.Kind), date, booking.Slots)
	metrics.BookingsCreated.WithLabelValues("fallback").Inc()
	logger.Warn("BookingService:Register:Fallback", "fallback_id", id, "error", err)
	return id, true
}

func (s *BookingService) notify(ctx context.Context, req *notifDto.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Create(ctx, req); err != nil {
		logger.Warn("BookingService:Notify", "type", req.Type, "error", err)
	}
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*dto.BookingResponse, *errors.AppError) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	return toBookingResponse(booking), nil
}

// CompleteBooking moves a paid booking to completed so it counts toward meet earnings.
func (s *BookingService) CompleteBooking(ctx context.Context, id string) (*dto.BookingResponse, *errors.AppError) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}

	ok, err := s.repo.Complete(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to complete booking", err)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "booking is "+string(booking.Status)+", only paid bookings can be completed", nil)
	}

	s.notify(ctx, &notifDto.CreateNotificationRequest{
		UserAddr: booking.ParticipantAddr,
		Title:    "Session completed",
		Message:  "Your " + booking.Kind + " session has been marked as completed",
		Type:     notifEntity.TypeBookingCompleted,
		Data:     map[string]interface{}{"bookingId": booking.ID},
	})

	logger.Info("BookingService:CompleteBooking:Success", "booking_id", id)
	return toBookingResponse(booking), nil
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:              b.ID,
		CreatorID:       b.CreatorID,
		CreatorAddr:     b.CreatorAddr,
		ParticipantAddr: b.ParticipantAddr,
		Kind:            b.Kind,
		Slots:           b.Slots,
		SlotMinutes:     b.SlotMinutes,
		StartsAt:        b.StartsAt,
		TotalUSD:        policy.CentsToUSD(b.TotalCents).StringFixed(2),
		Status:          string(b.Status),
		TxHash:          b.TxHash.String,
		CreatedAt:       b.CreatedAt,
	}
}
