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
var _ PublisherRepository = (*PgPublisherRepository)(nil)

// PgPublisherRepository is a PostgreSQL implementation of PublisherRepository.
type PgPublisherRepository struct {
	db DBTX
}

// NewPgPublisherRepository creates a new PostgreSQL publisher repository.
func NewPgPublisherRepository(db DBTX) *PgPublisherRepository {
	return &PgPublisherRepository{db: db}
}

// List retrieves publishers matching the filter, ordered by name.
// Name ordering keeps near-duplicate spellings adjacent, which the duplicate
// scan relies on for stable anchor selection.
func (r *PgPublisherRepository) List(ctx context.Context, filter PublisherFilter) ([]*domain.Publisher, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.NameContains != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		// Escape LIKE special characters to prevent pattern injection.
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter.NameContains)
		args = append(args, "%"+escaped+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM publisher %s", whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM publisher
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	publishers := make([]*domain.Publisher, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPublisherFromRows(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating publishers: %w", err)
	}

	return publishers, totalCount, nil
}

// GetByID retrieves a publisher by its ID.
func (r *PgPublisherRepository) GetByID(ctx context.Context, id int64) (*domain.Publisher, error) {
	query := `
		SELECT id, name, created_at
		FROM publisher
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	p, err := scanPublisher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("publisher", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get publisher by ID: %w", err)
	}

	return p, nil
}

// GetOrCreate retrieves an existing publisher by exact name or creates a new one.
// Uses a single INSERT...ON CONFLICT...RETURNING query to avoid two roundtrips.
func (r *PgPublisherRepository) GetOrCreate(ctx context.Context, name string) (*domain.Publisher, error) {
	name = domain.NormalizePublisherName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "publisher name cannot be empty or whitespace-only")
	}

	query := `
		INSERT INTO publisher (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET
			name = publisher.name
		RETURNING id, name, created_at`

	row := r.db.QueryRow(ctx, query, name)
	p, err := scanPublisher(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create publisher: %w", err)
	}

	return p, nil
}

// UpdateName overwrites a publisher's display name.
func (r *PgPublisherRepository) UpdateName(ctx context.Context, id int64, name string) error {
	name = domain.NormalizePublisherName(name)
	if name == "" {
		return domain.NewValidationError("name", "publisher name cannot be empty or whitespace-only")
	}

	query := `
		UPDATE publisher
		SET name = $2
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewAlreadyExistsError("publisher", name)
		}
		return fmt.Errorf("failed to update publisher name: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("publisher", strconv.FormatInt(id, 10))
	}

	return nil
}

// Delete removes a publisher. The publication FK is ON DELETE RESTRICT, so a
// publisher still referenced by publications cannot be deleted.
func (r *PgPublisherRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM publisher WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.NewValidationError("id", "publisher is still referenced by publications")
		}
		return fmt.Errorf("failed to delete publisher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("publisher", strconv.FormatInt(id, 10))
	}

	return nil
}

// Count returns the total number of publishers.
func (r *PgPublisherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM publisher`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publishers: %w", err)
	}
	return count, nil
}

// publisherScanDest holds the destination pointers for scanning a Publisher row.
type publisherScanDest struct {
	publisher domain.Publisher
}

func (d *publisherScanDest) destinations() []interface{} {
	return []interface{}{
		&d.publisher.ID, &d.publisher.Name, &d.publisher.CreatedAt,
	}
}

func (d *publisherScanDest) finalize() (*domain.Publisher, error) {
	return &d.publisher, nil
}

// scanPublisher scans a single row into a Publisher.
func scanPublisher(row pgx.Row) (*domain.Publisher, error) {
	var dest publisherScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}

// scanPublisherFromRows scans the current row from pgx.Rows into a Publisher.
func scanPublisherFromRows(rows pgx.Rows) (*domain.Publisher, error) {
	var dest publisherScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}
