package repository

import (
	"context"
	"testing"
	"time"

	"creator-ledger/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const user = "0x00000000000000000000000000000000000000a1"

func newMockRepo(t *testing.T) (*ActivityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewActivityRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

func TestSourcesAreOrderedNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM videos WHERE creator_addr = \$1 ORDER BY created_at DESC, id`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price_cents", "created_at"}).
			AddRow("v2", "Second", 300, now).
			AddRow("v1", "First", 100, now.Add(-time.Hour)))
	mock.ExpectQuery(`(?s)FROM purchases p.*ORDER BY p.created_at DESC, p.id`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_id", "title", "buyer", "price_cents", "created_at"}))
	mock.ExpectQuery(`(?s)FROM community_posts WHERE author_addr = \$1 ORDER BY created_at DESC, id`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at"}))
	mock.ExpectQuery(`(?s)FROM community_comments WHERE author_addr = \$1 ORDER BY created_at DESC, id`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "body", "created_at"}))
	mock.ExpectQuery(`(?s)FROM follows WHERE follower_addr = \$1 ORDER BY created_at DESC, followee_addr`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"followee_addr", "created_at"}))
	mock.ExpectQuery(`(?s)FROM campaigns WHERE creator_addr = \$1 ORDER BY created_at DESC, id`).WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "creation_fee_cents", "created_at"}))

	uploads, err := repo.Uploads(ctx, user)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "v2", uploads[0].VideoID)

	_, err = repo.Sales(ctx, user)
	require.NoError(t, err)
	_, err = repo.Posts(ctx, user)
	require.NoError(t, err)
	_, err = repo.Comments(ctx, user)
	require.NoError(t, err)
	follows, err := repo.Follows(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, follows)
	_, err = repo.Campaigns(ctx, user)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
