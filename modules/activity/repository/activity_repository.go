package repository

import (
	"context"
	"time"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
)

type UploadRow struct {
	VideoID    string    `db:"id"`
	Title      string    `db:"title"`
	PriceCents int64     `db:"price_cents"`
	CreatedAt  time.Time `db:"created_at"`
}

type SaleRow struct {
	PurchaseID string    `db:"id"`
	VideoID    string    `db:"video_id"`
	Title      string    `db:"title"`
	Buyer      string    `db:"buyer"`
	PriceCents int64     `db:"price_cents"`
	CreatedAt  time.Time `db:"created_at"`
}

type PostRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

type CommentRow struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

type FollowRow struct {
	FolloweeAddr string    `db:"followee_addr"`
	CreatedAt    time.Time `db:"created_at"`
}

type CampaignRow struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	CreationFeeCents int64     `db:"creation_fee_cents"`
	CreatedAt        time.Time `db:"created_at"`
}

// ActivityRepositoryInterface reads the raw rows that have no owning module here. Every source
// is returned newest first with the row key as tie-break, so merges are deterministic.
type ActivityRepositoryInterface interface {
	Uploads(ctx context.Context, userAddr string) ([]UploadRow, error)
	Sales(ctx context.Context, creatorAddr string) ([]SaleRow, error)
	Posts(ctx context.Context, userAddr string) ([]PostRow, error)
	Comments(ctx context.Context, userAddr string) ([]CommentRow, error)
	Follows(ctx context.Context, userAddr string) ([]FollowRow, error)
	Campaigns(ctx context.Context, userAddr string) ([]CampaignRow, error)
}

type ActivityRepository struct {
	DB database.IDatabase
}

func NewActivityRepository(db database.IDatabase) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func selectRows[T any](ctx context.Context, db database.IDatabase, step, query string, args ...any) ([]T, error) {
	rows := []T{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Error("ActivityRepository:"+step, err)
		return nil, err
	}
	return rows, nil
}

func (r *ActivityRepository) Uploads(ctx context.Context, userAddr string) ([]UploadRow, error) {
	return selectRows[UploadRow](ctx, r.DB, "Uploads",
		`SELECT id, title, price_cents, created_at FROM videos WHERE creator_addr = $1 ORDER BY created_at DESC, id`, userAddr)
}

func (r *ActivityRepository) Sales(ctx context.Context, creatorAddr string) ([]SaleRow, error) {
	return selectRows[SaleRow](ctx, r.DB, "Sales", `
		SELECT p.id, p.video_id, v.title, p.buyer, p.price_cents, p.created_at
		FROM purchases p
		JOIN videos v ON v.id = p.video_id
		WHERE v.creator_addr = $1
		ORDER BY p.created_at DESC, p.id
	`, creatorAddr)
}

func (r *ActivityRepository) Posts(ctx context.Context, userAddr string) ([]PostRow, error) {
	return selectRows[PostRow](ctx, r.DB, "Posts",
		`SELECT id, title, created_at FROM community_posts WHERE author_addr = $1 ORDER BY created_at DESC, id`, userAddr)
}

func (r *ActivityRepository) Comments(ctx context.Context, userAddr string) ([]CommentRow, error) {
	return selectRows[CommentRow](ctx, r.DB, "Comments",
		`SELECT id, post_id, body, created_at FROM community_comments WHERE author_addr = $1 ORDER BY created_at DESC, id`, userAddr)
}

func (r *ActivityRepository) Follows(ctx context.Context, userAddr string) ([]FollowRow, error) {
	return selectRows[FollowRow](ctx, r.DB, "Follows",
		`SELECT followee_addr, created_at FROM follows WHERE follower_addr = $1 ORDER BY created_at DESC, followee_addr`, userAddr)
}

func (r *ActivityRepository) Campaigns(ctx context.Context, userAddr string) ([]CampaignRow, error) {
	return selectRows[CampaignRow](ctx, r.DB, "Campaigns",
		`SELECT id, title, creation_fee_cents, created_at FROM campaigns WHERE creator_addr = $1 ORDER BY created_at DESC, id`, userAddr)
}
