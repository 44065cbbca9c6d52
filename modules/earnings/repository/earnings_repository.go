package repository

import (
	"context"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/modules/earnings/entity"
)

type EarningsRepositoryInterface interface {
	VideoSalesCents(ctx context.Context, creatorAddr string) (int64, error)
	CompletedMeetCents(ctx context.Context, creatorAddr string) (int64, error)
	StudioVideos(ctx context.Context, creatorAddr string) ([]entity.VideoSales, error)
}

type EarningsRepository struct {
	DB database.IDatabase
}

func NewEarningsRepository(db database.IDatabase) *EarningsRepository {
	return &EarningsRepository{DB: db}
}

func (r *EarningsRepository) VideoSalesCents(ctx context.Context, creatorAddr string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(p.price_cents), 0)
		FROM purchases p
		JOIN videos v ON v.id = p.video_id
		WHERE v.creator_addr = $1
	`
	var cents int64
	if err := r.DB.GetContext(ctx, &cents, query, creatorAddr); err != nil {
		logger.Error("EarningsRepository:VideoSalesCents", err)
		return 0, err
	}
	return cents, nil
}

// CompletedMeetCents only counts completed sessions; paid but not yet held ones do not earn.
func (r *EarningsRepository) CompletedMeetCents(ctx context.Context, creatorAddr string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(total_cents), 0)
		FROM bookings
		WHERE creator_addr = $1 AND status = 'completed'
	`
	var cents int64
	if err := r.DB.GetContext(ctx, &cents, query, creatorAddr); err != nil {
		logger.Error("EarningsRepository:CompletedMeetCents", err)
		return 0, err
	}
	return cents, nil
}

func (r *EarningsRepository) StudioVideos(ctx context.Context, creatorAddr string) ([]entity.VideoSales, error) {
	query := `
		SELECT v.id AS video_id, v.title, v.price_cents,
		       COUNT(DISTINCT p.buyer) AS buyers,
		       COALESCE(SUM(p.price_cents), 0) AS revenue_cents
		FROM videos v
		LEFT JOIN purchases p ON p.video_id = v.id
		WHERE v.creator_addr = $1
		GROUP BY v.id, v.title, v.price_cents, v.created_at
		ORDER BY revenue_cents DESC, v.created_at DESC
	`
	rows := []entity.VideoSales{}
	if err := r.DB.SelectContext(ctx, &rows, query, creatorAddr); err != nil {
		logger.Error("EarningsRepository:StudioVideos", err)
		return nil, err
	}
	return rows, nil
}
