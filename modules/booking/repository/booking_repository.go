package repository

import (
	"context"
	"database/sql"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/modules/booking/entity"
)

type BookingRepositoryInterface interface {
	Create(ctx context.Context, booking *entity.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	MarkPaid(ctx context.Context, id, txHash string) error
	Complete(ctx context.Context, id string) (bool, error)
	ListByCreator(ctx context.Context, creatorAddr string, status entity.BookingStatus) ([]entity.Booking, error)
	ListByParticipant(ctx context.Context, participantAddr string) ([]entity.Booking, error)
}

type BookingRepository struct {
	DB database.IDatabase
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, creator_id, creator_addr, participant_addr, kind, slots, slot_minutes, starts_at,
		       total_cents, status, tx_hash, created_at, updated_at`

// Create inserts a pending booking and returns the id generated by Postgres.
func (r *BookingRepository) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	query := `
		INSERT INTO bookings (creator_id, creator_addr, participant_addr, kind, slots, slot_minutes, starts_at, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id string
	err := r.DB.GetContext(ctx, &id, query,
		booking.CreatorID, booking.CreatorAddr, booking.ParticipantAddr, booking.Kind,
		booking.Slots, booking.SlotMinutes, booking.StartsAt, booking.TotalCents, booking.Status)
	if err != nil {
		logger.Error("BookingRepository:Create", err)
		return "", err
	}
	return id, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	if err := r.DB.GetContext(ctx, &booking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) MarkPaid(ctx context.Context, id, txHash string) error {
	query := `
		UPDATE bookings SET status = 'paid', tx_hash = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`
	if err := r.DB.ExecContext(ctx, query, id, txHash); err != nil {
		logger.Error("BookingRepository:MarkPaid", err)
		return err
	}
	return nil
}

// Complete moves a paid booking to completed. It reports false when no paid booking matched.
func (r *BookingRepository) Complete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE bookings SET status = 'completed', updated_at = now()
		WHERE id = $1 AND status = 'paid'
		RETURNING id
	`
	var updated string
	if err := r.DB.GetContext(ctx, &updated, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("BookingRepository:Complete", err)
		return false, err
	}
	return true, nil
}

func (r *BookingRepository) ListByCreator(ctx context.Context, creatorAddr string, status entity.BookingStatus) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE creator_addr = $1 AND status = $2 ORDER BY created_at DESC`

	bookings := []entity.Booking{}
	if err := r.DB.SelectContext(ctx, &bookings, query, creatorAddr, status); err != nil {
		logger.Error("BookingRepository:ListByCreator", err)
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ListByParticipant(ctx context.Context, participantAddr string) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE participant_addr = $1 AND status IN ('paid', 'completed')
		ORDER BY created_at DESC
	`
	bookings := []entity.Booking{}
	if err := r.DB.SelectContext(ctx, &bookings, query, participantAddr); err != nil {
		logger.Error("BookingRepository:ListByParticipant", err)
		return nil, err
	}
	return bookings, nil
}
