package repository

import (
	"context"
	"database/sql"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/modules/availability/entity"

	"github.com/jmoiron/sqlx"
)

type AvailabilityRepositoryInterface interface {
	ReplaceSchedule(ctx context.Context, creatorID string, entries []entity.ScheduleEntry) error
	GetSchedule(ctx context.Context, creatorID string) ([]entity.ScheduleEntry, error)
	UpsertSettings(ctx context.Context, settings *entity.SessionSettings) error
	GetSettings(ctx context.Context, creatorID string) (*entity.SessionSettings, error)
}

type AvailabilityRepository struct {
	DB database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// ReplaceSchedule swaps the creator's whole weekly schedule in one transaction.
func (r *AvailabilityRepository) ReplaceSchedule(ctx context.Context, creatorID string, entries []entity.ScheduleEntry) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM availability_entries WHERE creator_id = $1`, creatorID); err != nil {
			return err
		}
		insert := `
			INSERT INTO availability_entries (creator_id, weekday, start_time, duration_minutes, cadence_minutes, active_slots)
			VALUES (:creator_id, :weekday, :start_time, :duration_minutes, :cadence_minutes, :active_slots)
		`
		for i := range entries {
			if _, err := tx.NamedExecContext(ctx, insert, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceSchedule", "creator_id", creatorID, "error", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) GetSchedule(ctx context.Context, creatorID string) ([]entity.ScheduleEntry, error) {
	query := `
		SELECT id, creator_id, weekday, start_time, duration_minutes, cadence_minutes, active_slots, created_at
		FROM availability_entries
		WHERE creator_id = $1
		ORDER BY created_at, start_time
	`
	var entries []entity.ScheduleEntry
	if err := r.DB.SelectContext(ctx, &entries, query, creatorID); err != nil {
		logger.Error("AvailabilityRepository:GetSchedule", err)
		return nil, err
	}
	return entries, nil
}

func (r *AvailabilityRepository) UpsertSettings(ctx context.Context, settings *entity.SessionSettings) error {
	query := `
		INSERT INTO creator_session_settings (creator_id, creator_addr, slot_minutes, voice_price_usd, video_price_usd, rate_per_minute_usd, updated_at)
		VALUES (:creator_id, :creator_addr, :slot_minutes, :voice_price_usd, :video_price_usd, :rate_per_minute_usd, now())
		ON CONFLICT (creator_id) DO UPDATE SET
			creator_addr = EXCLUDED.creator_addr,
			slot_minutes = EXCLUDED.slot_minutes,
			voice_price_usd = EXCLUDED.voice_price_usd,
			video_price_usd = EXCLUDED.video_price_usd,
			rate_per_minute_usd = EXCLUDED.rate_per_minute_usd,
			updated_at = now()
	`
	if _, err := r.DB.NamedExecContext(ctx, query, settings); err != nil {
		logger.Error("AvailabilityRepository:UpsertSettings", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) GetSettings(ctx context.Context, creatorID string) (*entity.SessionSettings, error) {
	query := `
		SELECT creator_id, creator_addr, slot_minutes, voice_price_usd, video_price_usd, rate_per_minute_usd, updated_at
		FROM creator_session_settings
		WHERE creator_id = $1
	`
	var s entity.SessionSettings
	if err := r.DB.GetContext(ctx, &s, query, creatorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetSettings", err)
		return nil, err
	}
	return &s, nil
}
