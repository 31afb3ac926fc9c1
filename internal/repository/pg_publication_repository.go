package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// Compile-time interface verification.
var _ PublicationRepository = (*PgPublicationRepository)(nil)

// PgPublicationRepository is a PostgreSQL implementation of PublicationRepository.
type PgPublicationRepository struct {
	db DBTX
}

// NewPgPublicationRepository creates a new PostgreSQL publication repository.
func NewPgPublicationRepository(db DBTX) *PgPublicationRepository {
	return &PgPublicationRepository{db: db}
}

// Repoint moves every publication referencing sourceID to reference targetID.
// A single UPDATE keeps the repoint atomic even outside a transaction.
func (r *PgPublicationRepository) Repoint(ctx context.Context, sourceID, targetID int64) (int64, error) {
	query := `
		UPDATE publication
		SET publisher_id = $2
		WHERE publisher_id = $1`

	result, err := r.db.Exec(ctx, query, sourceID, targetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return 0, domain.NewNotFoundError("publisher", strconv.FormatInt(targetID, 10))
		}
		return 0, fmt.Errorf("failed to repoint publications: %w", err)
	}

	return result.RowsAffected(), nil
}

// CreateBatch inserts publications in a single multi-row INSERT.
func (r *PgPublicationRepository) CreateBatch(ctx context.Context, publications []*domain.Publication) error {
	if len(publications) == 0 {
		return nil
	}

	var valueStrings []string
	var args []interface{}

	for i, p := range publications {
		if p == nil {
			return domain.NewValidationError("publications", fmt.Sprintf("publication at index %d is nil", i))
		}
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			i*5+1, i*5+2, i*5+3, i*5+4, i*5+5))
		args = append(args, p.WorkID, p.PublisherID, p.PublicationYear, p.PlateNumber, p.EditionNote)
	}

	query := fmt.Sprintf(`
		INSERT INTO publication (work_id, publisher_id, publication_year, plate_number, edition_note)
		VALUES %s`,
		strings.Join(valueStrings, ", "))

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.NewNotFoundError("work or publisher", "foreign key constraint violation")
		}
		return fmt.Errorf("failed to create publications: %w", err)
	}

	return nil
}

// ListByWork retrieves all publications of a work, oldest edition first.
func (r *PgPublicationRepository) ListByWork(ctx context.Context, workID int64) ([]*domain.Publication, error) {
	query := `
		SELECT id, work_id, publisher_id, publication_year, plate_number, edition_note
		FROM publication
		WHERE work_id = $1
		ORDER BY publication_year ASC NULLS LAST, id ASC`

	rows, err := r.db.Query(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	defer rows.Close()

	publications := make([]*domain.Publication, 0)
	for rows.Next() {
		p, err := scanPublicationFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		publications = append(publications, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publications: %w", err)
	}

	return publications, nil
}

// CountByPublisher returns the number of publications referencing a publisher.
func (r *PgPublicationRepository) CountByPublisher(ctx context.Context, publisherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM publication WHERE publisher_id = $1`, publisherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count publications: %w", err)
	}
	return count, nil
}

// publicationScanDest holds the destination pointers for scanning a Publication row.
type publicationScanDest struct {
	publication domain.Publication
}

func (d *publicationScanDest) destinations() []interface{} {
	return []interface{}{
		&d.publication.ID, &d.publication.WorkID, &d.publication.PublisherID,
		&d.publication.PublicationYear, &d.publication.PlateNumber, &d.publication.EditionNote,
	}
}

func (d *publicationScanDest) finalize() (*domain.Publication, error) {
	return &d.publication, nil
}

// scanPublicationFromRows scans the current row from pgx.Rows into a Publication.
func scanPublicationFromRows(rows pgx.Rows) (*domain.Publication, error) {
	var dest publicationScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}
