package repository

import (
	"context"
	"database/sql"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/modules/commerce/entity"

	"github.com/google/uuid"
)

type CommerceRepositoryInterface interface {
	CreateVideo(ctx context.Context, v *entity.Video) (*entity.Video, error)
	GetVideo(ctx context.Context, id string) (*entity.Video, error)
	CreatePurchase(ctx context.Context, p *entity.Purchase) (uuid.UUID, error)
	CreateCampaign(ctx context.Context, c *entity.Campaign) (uuid.UUID, error)
	CampaignExists(ctx context.Context, id uuid.UUID) (bool, error)
	RecordClick(ctx context.Context, campaignID uuid.UUID, userAddr string) (int64, error)
}

type CommerceRepository struct {
	DB database.IDatabase
}

func NewCommerceRepository(db database.IDatabase) *CommerceRepository {
	return &CommerceRepository{DB: db}
}

func (r *CommerceRepository) CreateVideo(ctx context.Context, v *entity.Video) (*entity.Video, error) {
	query := `
		INSERT INTO videos (id, creator_addr, title, price_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, price_cents = EXCLUDED.price_cents
		WHERE videos.creator_addr = EXCLUDED.creator_addr
		RETURNING id, creator_addr, title, price_cents, created_at
	`
	var created entity.Video
	err := r.DB.GetContext(ctx, &created, query, v.ID, v.CreatorAddr, v.Title, v.PriceCents)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CommerceRepository:CreateVideo", err)
		return nil, err
	}
	return &created, nil
}

func (r *CommerceRepository) GetVideo(ctx context.Context, id string) (*entity.Video, error) {
	query := `SELECT id, creator_addr, title, price_cents, created_at FROM videos WHERE id = $1`

	var v entity.Video
	if err := r.DB.GetContext(ctx, &v, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CommerceRepository:GetVideo", err)
		return nil, err
	}
	return &v, nil
}

func (r *CommerceRepository) CreatePurchase(ctx context.Context, p *entity.Purchase) (uuid.UUID, error) {
	query := `
		INSERT INTO purchases (buyer, video_id, price_cents, tx_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.DB.GetContext(ctx, &id, query, p.Buyer, p.VideoID, p.PriceCents, p.TxHash); err != nil {
		logger.Error("CommerceRepository:CreatePurchase", err)
		return uuid.Nil, err
	}
	return id, nil
}

func (r *CommerceRepository) CreateCampaign(ctx context.Context, c *entity.Campaign) (uuid.UUID, error) {
	query := `
		INSERT INTO campaigns (creator_addr, title, creation_fee_cents)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.DB.GetContext(ctx, &id, query, c.CreatorAddr, c.Title, c.CreationFeeCents); err != nil {
		logger.Error("CommerceRepository:CreateCampaign", err)
		return uuid.Nil, err
	}
	return id, nil
}

func (r *CommerceRepository) CampaignExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, id); err != nil {
		logger.Error("CommerceRepository:CampaignExists", err)
		return false, err
	}
	return exists, nil
}

// RecordClick stores one click and returns the campaign's click count after it.
func (r *CommerceRepository) RecordClick(ctx context.Context, campaignID uuid.UUID, userAddr string) (int64, error) {
	user := sql.NullString{String: userAddr, Valid: userAddr != ""}
	if err := r.DB.ExecContext(ctx, `INSERT INTO campaign_clicks (campaign_id, user_addr) VALUES ($1, $2)`, campaignID, user); err != nil {
		logger.Error("CommerceRepository:RecordClick:Insert", err)
		return 0, err
	}

	var clicks int64
	if err := r.DB.GetContext(ctx, &clicks, `SELECT COUNT(*) FROM campaign_clicks WHERE campaign_id = $1`, campaignID); err != nil {
		logger.Error("CommerceRepository:RecordClick:Count", err)
		return 0, err
	}
	return clicks, nil
}
