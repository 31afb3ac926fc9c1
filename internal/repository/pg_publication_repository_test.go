package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/music-catalog-service/internal/domain"
)

func TestPgPublicationRepository_Repoint(t *testing.T) {
	t.Run("repoints all publications and returns count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgPublicationRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`UPDATE publication SET publisher_id = \$2 WHERE publisher_id = \$1`).
			WithArgs(int64(2), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 12))

		count, err := repo.Repoint(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when source has no publications", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgPublicationRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`UPDATE publication SET publisher_id = \$2 WHERE publisher_id = \$1`).
			WithArgs(int64(2), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		count, err := repo.Repoint(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing target to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgPublicationRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`UPDATE publication SET publisher_id = \$2 WHERE publisher_id = \$1`).
			WithArgs(int64(2), int64(99)).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		_, err = repo.Repoint(ctx, 2, 99)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPublicationRepository_CreateBatch(t *testing.T) {
	t.Run("inserts publications in one statement", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgPublicationRepository(mock)
		ctx := context.Background()

		workID := int64(10)
		publisherID := int64(1)
		year := 1905
		publications := []*domain.Publication{
			{WorkID: &workID, PublisherID: &publisherID, PublicationYear: &year, PlateNumber: "N.M.O. 123"},
			{WorkID: &workID, PublisherID: &publisherID},
		}

		mock.ExpectExec(`INSERT INTO publication \(work_id, publisher_id, publication_year, plate_number, edition_note\)`).
			WithArgs(&workID, &publisherID, &year, "N.M.O. 123", "", &workID, &publisherID, (*int)(nil), "", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		err = repo.CreateBatch(ctx, publications)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgPublicationRepository(mock)

		require.NoError(t, repo.CreateBatch(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgPublicationRepository_CountByPublisher(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgPublicationRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM publication WHERE publisher_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountByPublisher(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPublicationRepository_ListByWork(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgPublicationRepository(mock)
	ctx := context.Background()

	workID := int64(10)
	publisherID := int64(1)
	year := 1905
	mock.ExpectQuery(`SELECT id, work_id, publisher_id, publication_year, plate_number, edition_note FROM publication WHERE work_id = \$1`).
		WithArgs(workID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "work_id", "publisher_id", "publication_year", "plate_number", "edition_note"}).
			AddRow(int64(100), &workID, &publisherID, &year, "N.M.O. 123", "first edition"))

	publications, err := repo.ListByWork(ctx, workID)
	require.NoError(t, err)
	require.Len(t, publications, 1)
	assert.Equal(t, int64(100), publications[0].ID)
	assert.Equal(t, "N.M.O. 123", publications[0].PlateNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
