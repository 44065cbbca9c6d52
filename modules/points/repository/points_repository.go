package repository

import (
	"context"
	"database/sql"
	"fmt"

	"creator-ledger/core/database"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/modules/points/entity"

	"github.com/jmoiron/sqlx"
)

// ErrCampaignNotFound is returned by CreditCampaign when no campaign row has the given id.
var ErrCampaignNotFound = errors.New("campaign not found")

type PointsRepositoryInterface interface {
	Credit(ctx context.Context, kind entity.CreditKind, userAddr, videoID string, points int64) (*entity.Progress, bool, error)
	CreditCampaign(ctx context.Context, userAddr, campaignID string, points int64) (*entity.AdsPoints, bool, error)
	TotalPointsEarned(ctx context.Context, userAddr string) (int64, error)
	ListProgress(ctx context.Context, userAddr string) ([]entity.Progress, error)
	GetAdsPoints(ctx context.Context, userAddr string) (*entity.AdsPoints, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type PointsRepository struct {
	DB database.IDatabase
}

func NewPointsRepository(db database.IDatabase) *PointsRepository {
	return &PointsRepository{DB: db}
}

const progressColumns = `id, user_addr, video_id, has_completed_task, points_from_task, task_completed_at,
		has_shared, points_from_share, shared_at, has_purchased, points_from_purchase, purchased_at,
		total_points_earned, created_at, updated_at`

type creditColumns struct {
	flag, points, at string
}

var columnsByKind = map[entity.CreditKind]creditColumns{
	entity.CreditTask:     {"has_completed_task", "points_from_task", "task_completed_at"},
	entity.CreditShare:    {"has_shared", "points_from_share", "shared_at"},
	entity.CreditPurchase: {"has_purchased", "points_from_purchase", "purchased_at"},
}

// Credit sets the kind's flag once per (user, video). The row is created lazily and the flag
// is flipped with a conditional update, so concurrent or repeated credits award points once.
// The bool result is false when the flag was already set; the existing row is returned then.
func (r *PointsRepository) Credit(ctx context.Context, kind entity.CreditKind, userAddr, videoID string, points int64) (*entity.Progress, bool, error) {
	cols, ok := columnsByKind[kind]
	if !ok {
		return nil, false, fmt.Errorf("unknown credit kind %q", kind)
	}

	update := fmt.Sprintf(`
		UPDATE user_video_progress
		SET %[1]s = true, %[2]s = $3, %[3]s = now(),
		    total_points_earned = total_points_earned + $3, updated_at = now()
		WHERE user_addr = $1 AND video_id = $2 AND %[1]s = false
		RETURNING %[4]s
	`, cols.flag, cols.points, cols.at, progressColumns)

	var (
		progress entity.Progress
		credited bool
	)
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_video_progress (user_addr, video_id)
			VALUES ($1, $2)
			ON CONFLICT (user_addr, video_id) DO NOTHING
		`, userAddr, videoID)
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &progress, update, userAddr, videoID, points)
		if err == nil {
			credited = true
			return nil
		}
		if err != sql.ErrNoRows {
			return err
		}
		return tx.GetContext(ctx, &progress,
			`SELECT `+progressColumns+` FROM user_video_progress WHERE user_addr = $1 AND video_id = $2`,
			userAddr, videoID)
	})
	if err != nil {
		logger.Error("PointsRepository:Credit", "kind", kind, "user_addr", userAddr, "video_id", videoID, "error", err)
		return nil, false, err
	}
	return &progress, credited, nil
}

// CreditCampaign adds ads points for one campaign. With a campaign id the award is claimed on
// the campaign row first, so a replayed credit is a no-op; an id with no campaign row yields
// ErrCampaignNotFound.
func (r *PointsRepository) CreditCampaign(ctx context.Context, userAddr, campaignID string, points int64) (*entity.AdsPoints, bool, error) {
	var (
		ads      entity.AdsPoints
		credited bool
	)
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if campaignID != "" {
			res, err := tx.ExecContext(ctx,
				`UPDATE campaigns SET points_credited = true WHERE id = $1 AND points_credited = false`, campaignID)
			if err != nil {
				return err
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				var exists bool
				if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, campaignID); err != nil {
					return err
				}
				if !exists {
					return ErrCampaignNotFound
				}
				err := tx.GetContext(ctx, &ads,
					`SELECT user_addr, total_ads_points, campaigns_created, updated_at FROM user_ads_points WHERE user_addr = $1`,
					userAddr)
				if err == sql.ErrNoRows {
					ads = entity.AdsPoints{UserAddr: userAddr}
					return nil
				}
				return err
			}
		}

		credited = true
		return tx.GetContext(ctx, &ads, `
			INSERT INTO user_ads_points (user_addr, total_ads_points, campaigns_created, updated_at)
			VALUES ($1, $2, 1, now())
			ON CONFLICT (user_addr) DO UPDATE SET
				total_ads_points = user_ads_points.total_ads_points + EXCLUDED.total_ads_points,
				campaigns_created = user_ads_points.campaigns_created + 1,
				updated_at = now()
			RETURNING user_addr, total_ads_points, campaigns_created, updated_at
		`, userAddr, points)
	})
	if errors.Is(err, ErrCampaignNotFound) {
		return nil, false, err
	}
	if err != nil {
		logger.Error("PointsRepository:CreditCampaign", "user_addr", userAddr, "campaign_id", campaignID, "error", err)
		return nil, false, err
	}
	return &ads, credited, nil
}

func (r *PointsRepository) TotalPointsEarned(ctx context.Context, userAddr string) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(total_points_earned), 0) FROM user_video_progress WHERE user_addr = $1`
	if err := r.DB.GetContext(ctx, &total, query, userAddr); err != nil {
		logger.Error("PointsRepository:TotalPointsEarned", err)
		return 0, err
	}
	return total, nil
}

func (r *PointsRepository) ListProgress(ctx context.Context, userAddr string) ([]entity.Progress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_video_progress WHERE user_addr = $1 ORDER BY updated_at DESC`
	rows := []entity.Progress{}
	if err := r.DB.SelectContext(ctx, &rows, query, userAddr); err != nil {
		logger.Error("PointsRepository:ListProgress", err)
		return nil, err
	}
	return rows, nil
}

func (r *PointsRepository) GetAdsPoints(ctx context.Context, userAddr string) (*entity.AdsPoints, error) {
	var ads entity.AdsPoints
	query := `SELECT user_addr, total_ads_points, campaigns_created, updated_at FROM user_ads_points WHERE user_addr = $1`
	if err := r.DB.GetContext(ctx, &ads, query, userAddr); err != nil {
		if err == sql.ErrNoRows {
			return &entity.AdsPoints{UserAddr: userAddr}, nil
		}
		logger.Error("PointsRepository:GetAdsPoints", err)
		return nil, err
	}
	return &ads, nil
}

func (r *PointsRepository) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	query := `
		SELECT u.user_addr,
		       COALESCE(p.total, 0) AS video_points,
		       COALESCE(a.total_ads_points, 0) AS ads_points,
		       COALESCE(p.total, 0) + COALESCE(a.total_ads_points, 0) AS total_points
		FROM (
			SELECT user_addr FROM user_video_progress
			UNION
			SELECT user_addr FROM user_ads_points
		) u
		LEFT JOIN (
			SELECT user_addr, SUM(total_points_earned) AS total
			FROM user_video_progress
			GROUP BY user_addr
		) p ON p.user_addr = u.user_addr
		LEFT JOIN user_ads_points a ON a.user_addr = u.user_addr
		ORDER BY total_points DESC, u.user_addr
		LIMIT $1
	`
	entries := []entity.LeaderboardEntry{}
	if err := r.DB.SelectContext(ctx, &entries, query, limit); err != nil {
		logger.Error("PointsRepository:Leaderboard", err)
		return nil, err
	}
	return entries, nil
}
