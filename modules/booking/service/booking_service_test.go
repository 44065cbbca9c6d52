package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"creator-ledger/core/errors"
	"creator-ledger/core/policy"
	availEntity "creator-ledger/modules/availability/entity"
	"creator-ledger/modules/booking/dto"
	"creator-ledger/modules/booking/entity"
	notifDto "creator-ledger/modules/notification/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	creatorAddr     = "0x00000000000000000000000000000000000000c1"
	participantAddr = "0x00000000000000000000000000000000000000b2"
	bookingUUID     = "7f1c1a52-52a4-4c6b-9bb4-5d4f3f0f6a10"
)

type fakeBookingRepo struct {
	createErr error
	created   []*entity.Booking
	byID      map[string]*entity.Booking
	paid      map[string]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: map[string]*entity.Booking{}, paid: map[string]string{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	created := *b
	created.ID = bookingUUID
	stored := created
	f.created = append(f.created, &created)
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	return f.byID[id], nil
}

func (f *fakeBookingRepo) MarkPaid(_ context.Context, id, txHash string) error {
	f.paid[id] = txHash
	if b, ok := f.byID[id]; ok {
		b.Status = entity.StatusPaid
	}
	return nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id string) (bool, error) {
	b, ok := f.byID[id]
	if !ok || b.Status != entity.StatusPaid {
		return false, nil
	}
	b.Status = entity.StatusCompleted
	return true, nil
}

func (f *fakeBookingRepo) ListByCreator(context.Context, string, entity.BookingStatus) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByParticipant(context.Context, string) ([]entity.Booking, error) {
	return nil, nil
}

type fakeSettler struct {
	err     error
	calls   int
	id      string
	creator string
	amount  decimal.Decimal
}

func (f *fakeSettler) PaySession(_ context.Context, bookingID, creator string, total decimal.Decimal) (string, error) {
	f.calls++
	f.id, f.creator, f.amount = bookingID, creator, total
	if f.err != nil {
		return "", f.err
	}
	return "0xtx", nil
}

type fakeSettings struct {
	settings *availEntity.SessionSettings
	calls    int
}

func (f *fakeSettings) GetSettings(context.Context, string) (*availEntity.SessionSettings, error) {
	f.calls++
	return f.settings, nil
}

type recordingNotifier struct {
	sent []*notifDto.CreateNotificationRequest
}

func (r *recordingNotifier) Create(_ context.Context, req *notifDto.CreateNotificationRequest) error {
	r.sent = append(r.sent, req)
	return nil
}

type fixture struct {
	repo     *fakeBookingRepo
	settler  *fakeSettler
	settings *fakeSettings
	notifier *recordingNotifier
	svc      *BookingService
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newFakeBookingRepo(),
		settler: &fakeSettler{},
		settings: &fakeSettings{settings: &availEntity.SessionSettings{
			CreatorID:     "creator-1",
			CreatorAddr:   creatorAddr,
			SlotMinutes:   10,
			VoicePriceUSD: decimal.NewNullDecimal(decimal.RequireFromString("1.50")),
		}},
		notifier: &recordingNotifier{},
	}
	f.svc = NewBookingService(f.repo, f.settings, f.settler, f.notifier, policy.Default(), func() time.Time { return monday })
	return f
}

func mondayRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		CreatorID:       "creator-1",
		ParticipantAddr: participantAddr,
		Kind:            "voice",
		Day:             "monday",
		Slots:           []string{"09:10", "09:00"},
	}
}

func TestCreateBookingMondayScenario(t *testing.T) {
	f := newFixture()

	resp, appErr := f.svc.CreateBooking(context.Background(), mondayRequest())
	require.Nil(t, appErr)

	assert.Equal(t, bookingUUID, resp.BookingID)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "3.00", resp.TotalUSD)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), resp.StartsAt)
	assert.Equal(t, "0xtx", resp.TxHash)

	require.Equal(t, 1, f.settler.calls)
	assert.True(t, f.settler.amount.Equal(decimal.RequireFromString("3.00")))
	assert.Equal(t, creatorAddr, f.settler.creator)
	assert.Equal(t, bookingUUID, f.settler.id)

	require.Len(t, f.repo.created, 1)
	created := f.repo.created[0]
	assert.Equal(t, int64(300), created.TotalCents)
	assert.Equal(t, []string{"09:00", "09:10"}, []string(created.Slots))
	assert.Equal(t, entity.StatusPending, created.Status)
	assert.Equal(t, entity.StatusPaid, f.repo.byID[bookingUUID].Status)
	assert.Equal(t, "0xtx", f.repo.paid[bookingUUID])

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, creatorAddr, f.notifier.sent[0].UserAddr)
}

func TestCreateBookingFallsBackWhenRegistrationFails(t *testing.T) {
	f := newFixture()
	f.repo.createErr = fmt.Errorf("connection refused")

	resp, appErr := f.svc.CreateBooking(context.Background(), mondayRequest())
	require.Nil(t, appErr)

	assert.True(t, resp.Fallback)
	assert.Equal(t, "local-creator-1-voice-2026-10-19-09:00,09:10", resp.BookingID)
	assert.Equal(t, resp.BookingID, f.settler.id)
	assert.True(t, f.settler.amount.Equal(decimal.RequireFromString("3.00")))
	assert.Empty(t, f.repo.paid)
}

func TestCreateBookingSettlementFailureLeavesPending(t *testing.T) {
	f := newFixture()
	f.settler.err = fmt.Errorf("relay timeout")

	resp, appErr := f.svc.CreateBooking(context.Background(), mondayRequest())
	require.NotNil(t, appErr)
	assert.Nil(t, resp)
	assert.Equal(t, errors.ErrSettlementFailed, appErr.Code)
	assert.True(t, errors.Is(appErr, &errors.AppError{Code: errors.ErrSettlementFailed}))
	assert.NotEmpty(t, appErr.Message)

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, entity.StatusPending, f.repo.byID[bookingUUID].Status)
	assert.Empty(t, f.repo.paid)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateBookingRejectsBadCreatorAddressBeforeAnyCall(t *testing.T) {
	f := newFixture()
	req := mondayRequest()
	req.CreatorAddr = "0x1234"
	req.Slots = nil

	_, appErr := f.svc.CreateBooking(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidCreatorAddress, appErr.Code)
	assert.Zero(t, f.settings.calls)
	assert.Zero(t, f.settler.calls)
	assert.Empty(t, f.repo.created)
}

func TestCreateBookingRejectsEmptySelection(t *testing.T) {
	f := newFixture()
	req := mondayRequest()
	req.Slots = []string{" "}

	_, appErr := f.svc.CreateBooking(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNoSlotsSelected, appErr.Code)
	assert.Zero(t, f.settler.calls)
	assert.Empty(t, f.repo.created)
}

func TestCreateBookingValidatesKindDayAndSlots(t *testing.T) {
	for name, mutate := range map[string]func(*dto.CreateBookingRequest){
		"kind":        func(r *dto.CreateBookingRequest) { r.Kind = "chat" },
		"day":         func(r *dto.CreateBookingRequest) { r.Day = "someday" },
		"slot":        func(r *dto.CreateBookingRequest) { r.Slots = []string{"09:00", "9am"} },
		"participant": func(r *dto.CreateBookingRequest) { r.ParticipantAddr = "bob" },
		"price":       func(r *dto.CreateBookingRequest) { r.PricePerSessionUSD = "free" },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			req := mondayRequest()
			mutate(req)
			_, appErr := f.svc.CreateBooking(context.Background(), req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
			assert.Zero(t, f.settler.calls)
		})
	}
}

func TestCreateBookingCanonicalizesSlots(t *testing.T) {
	t.Run("padded and unpadded hours are one slot", func(t *testing.T) {
		f := newFixture()
		req := mondayRequest()
		req.Slots = []string{"09:00", "9:00"}

		resp, appErr := f.svc.CreateBooking(context.Background(), req)
		require.Nil(t, appErr)
		assert.Equal(t, "1.50", resp.TotalUSD)
		assert.True(t, f.settler.amount.Equal(decimal.RequireFromString("1.50")))
		require.Len(t, f.repo.created, 1)
		assert.Equal(t, []string{"09:00"}, []string(f.repo.created[0].Slots))
	})

	t.Run("earliest slot is sorted numerically", func(t *testing.T) {
		f := newFixture()
		req := mondayRequest()
		req.Slots = []string{"10:00", "9:50"}

		resp, appErr := f.svc.CreateBooking(context.Background(), req)
		require.Nil(t, appErr)
		assert.Equal(t, time.Date(2026, 10, 19, 9, 50, 0, 0, time.UTC), resp.StartsAt)
		assert.Equal(t, []string{"09:50", "10:00"}, []string(f.repo.created[0].Slots))
	})

	t.Run("off-grid slot", func(t *testing.T) {
		f := newFixture()
		req := mondayRequest()
		req.Slots = []string{"09:00", "09:05"}

		_, appErr := f.svc.CreateBooking(context.Background(), req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		assert.Zero(t, f.settler.calls)
		assert.Empty(t, f.repo.created)
	})
}

func TestCreateBookingSlotLengthFollowsCadence(t *testing.T) {
	f := newFixture()
	f.settings.settings.SlotMinutes = 15
	f.settings.settings.VideoPriceUSD = decimal.NullDecimal{}
	f.settings.settings.RatePerMinuteUSD = decimal.RequireFromString("0.10")
	req := mondayRequest()
	req.Kind = "video"

	resp, appErr := f.svc.CreateBooking(context.Background(), req)
	require.Nil(t, appErr)
	assert.Equal(t, "2.00", resp.TotalUSD)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, policy.Default().SlotCadenceMinutes, f.repo.created[0].SlotMinutes)
}

func TestCreateBookingPricing(t *testing.T) {
	t.Run("explicit price wins", func(t *testing.T) {
		f := newFixture()
		req := mondayRequest()
		req.PricePerSessionUSD = "2.25"
		resp, appErr := f.svc.CreateBooking(context.Background(), req)
		require.Nil(t, appErr)
		assert.Equal(t, "4.50", resp.TotalUSD)
	})

	t.Run("per-minute rate", func(t *testing.T) {
		f := newFixture()
		f.settings.settings.VideoPriceUSD = decimal.NullDecimal{}
		f.settings.settings.RatePerMinuteUSD = decimal.RequireFromString("0.20")
		req := mondayRequest()
		req.Kind = "video"
		resp, appErr := f.svc.CreateBooking(context.Background(), req)
		require.Nil(t, appErr)
		assert.Equal(t, "4.00", resp.TotalUSD)
	})

	t.Run("no pricing", func(t *testing.T) {
		f := newFixture()
		f.settings.settings = nil
		req := mondayRequest()
		req.CreatorAddr = creatorAddr
		_, appErr := f.svc.CreateBooking(context.Background(), req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})
}

func TestCompleteBooking(t *testing.T) {
	f := newFixture()
	_, appErr := f.svc.CreateBooking(context.Background(), mondayRequest())
	require.Nil(t, appErr)

	done, appErr := f.svc.CompleteBooking(context.Background(), bookingUUID)
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StatusCompleted), done.Status)
	assert.Equal(t, "3.00", done.TotalUSD)
	assert.Equal(t, participantAddr, f.notifier.sent[len(f.notifier.sent)-1].UserAddr)

	_, appErr = f.svc.CompleteBooking(context.Background(), bookingUUID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = f.svc.CompleteBooking(context.Background(), "local-creator-1-voice")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
