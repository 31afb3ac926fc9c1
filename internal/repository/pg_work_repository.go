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
var _ WorkRepository = (*PgWorkRepository)(nil)

// PgWorkRepository is a PostgreSQL implementation of WorkRepository.
type PgWorkRepository struct {
	db DBTX
}

// NewPgWorkRepository creates a new PostgreSQL work repository.
func NewPgWorkRepository(db DBTX) *PgWorkRepository {
	return &PgWorkRepository{db: db}
}

const workColumns = `id, title, category_id, composition_year, composition_year_to,
		key_signature, form_or_genre, comments, rating, created_at, updated_at`

// Create inserts a single work and fills in its assigned ID and timestamps.
func (r *PgWorkRepository) Create(ctx context.Context, work *domain.Work) error {
	if work == nil {
		return domain.NewValidationError("work", "work cannot be nil")
	}
	if strings.TrimSpace(work.Title) == "" {
		return domain.NewValidationError("title", "work title cannot be empty")
	}

	query := `
		INSERT INTO work (title, category_id, composition_year, composition_year_to,
			key_signature, form_or_genre, comments, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		work.Title, work.CategoryID, work.CompositionYear, work.CompositionYearTo,
		work.KeySignature, work.FormOrGenre, work.Comments, work.Rating,
	).Scan(&work.ID, &work.CreatedAt, &work.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.NewNotFoundError("category", fmt.Sprintf("%v", work.CategoryID))
		}
		return fmt.Errorf("failed to create work: %w", err)
	}

	return nil
}

// CreateBatch inserts works in a single multi-row INSERT.
// RETURNING preserves insert order for a single VALUES list, so the returned
// slice lines up with the input.
func (r *PgWorkRepository) CreateBatch(ctx context.Context, works []*domain.Work) ([]*domain.Work, error) {
	if len(works) == 0 {
		return []*domain.Work{}, nil
	}

	var valueStrings []string
	var args []interface{}

	for i, w := range works {
		if w == nil {
			return nil, domain.NewValidationError("works", fmt.Sprintf("work at index %d is nil", i))
		}
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8))
		args = append(args, w.Title, w.CategoryID, w.CompositionYear, w.CompositionYearTo,
			w.KeySignature, w.FormOrGenre, w.Comments, w.Rating)
	}

	query := fmt.Sprintf(`
		INSERT INTO work (title, category_id, composition_year, composition_year_to,
			key_signature, form_or_genre, comments, rating)
		VALUES %s
		RETURNING `+workColumns,
		strings.Join(valueStrings, ", "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create works: %w", err)
	}
	defer rows.Close()

	created := make([]*domain.Work, 0, len(works))
	for rows.Next() {
		w, err := scanWorkFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		created = append(created, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating works: %w", err)
	}

	return created, nil
}

// GetByID retrieves a work by its ID.
func (r *PgWorkRepository) GetByID(ctx context.Context, id int64) (*domain.Work, error) {
	query := `
		SELECT ` + workColumns + `
		FROM work
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	w, err := scanWork(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("work", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get work by ID: %w", err)
	}

	return w, nil
}

// List retrieves works matching the filter criteria.
func (r *PgWorkRepository) List(ctx context.Context, filter WorkFilter) ([]*domain.Work, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.TitleContains != "" {
		conditions = append(conditions, fmt.Sprintf("w.title ILIKE $%d", argIndex))
		// Escape LIKE special characters to prevent pattern injection.
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter.TitleContains)
		args = append(args, "%"+escaped+"%")
		argIndex++
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("w.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.PersonID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM work_contributor wc WHERE wc.work_id = w.id AND wc.person_id = $%d)", argIndex))
		args = append(args, *filter.PersonID)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM work w %s", whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count works: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT w.id, w.title, w.category_id, w.composition_year, w.composition_year_to,
			w.key_signature, w.form_or_genre, w.comments, w.rating, w.created_at, w.updated_at
		FROM work w
		%s
		ORDER BY w.title ASC, w.id ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list works: %w", err)
	}
	defer rows.Close()

	works := make([]*domain.Work, 0, filter.Limit)
	for rows.Next() {
		w, err := scanWorkFromRows(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, w)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating works: %w", err)
	}

	return works, totalCount, nil
}

// ExistingTitleKeys returns the title::category keys of all stored works.
func (r *PgWorkRepository) ExistingTitleKeys(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT title, COALESCE(category_id, 0) FROM work`)
	if err != nil {
		return nil, fmt.Errorf("failed to load work title keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var title string
		var categoryID int64
		if err := rows.Scan(&title, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan work title key: %w", err)
		}
		keys[domain.WorkTitleKey(title, categoryID)] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work title keys: %w", err)
	}

	return keys, nil
}

// AddContributors links people to works with an idempotent bulk insert.
func (r *PgWorkRepository) AddContributors(ctx context.Context, contributors []domain.WorkContributor) error {
	if len(contributors) == 0 {
		return nil
	}

	var valueStrings []string
	var args []interface{}

	for i, c := range contributors {
		if !c.Role.Valid() {
			return domain.NewValidationError("role", fmt.Sprintf("invalid contributor role %q at index %d", c.Role, i))
		}
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			i*5+1, i*5+2, i*5+3, i*5+4, i*5+5))
		args = append(args, c.WorkID, c.PersonID, c.Role, c.SequenceNo, c.Notes)
	}

	query := fmt.Sprintf(`
		INSERT INTO work_contributor (work_id, person_id, role, sequence_no, notes)
		VALUES %s
		ON CONFLICT (work_id, person_id, role) DO NOTHING`,
		strings.Join(valueStrings, ", "))

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.NewNotFoundError("work or person", "foreign key constraint violation")
		}
		return fmt.Errorf("failed to add contributors: %w", err)
	}

	return nil
}

// ListContributors retrieves the contributor links of a work in sequence order.
func (r *PgWorkRepository) ListContributors(ctx context.Context, workID int64) ([]domain.WorkContributor, error) {
	query := `
		SELECT work_id, person_id, role, sequence_no, notes
		FROM work_contributor
		WHERE work_id = $1
		ORDER BY sequence_no ASC NULLS LAST, person_id ASC`

	rows, err := r.db.Query(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	defer rows.Close()

	contributors := make([]domain.WorkContributor, 0)
	for rows.Next() {
		var c domain.WorkContributor
		if err := rows.Scan(&c.WorkID, &c.PersonID, &c.Role, &c.SequenceNo, &c.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan contributor: %w", err)
		}
		contributors = append(contributors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributors: %w", err)
	}

	return contributors, nil
}

// workScanDest holds the destination pointers for scanning a Work row.
type workScanDest struct {
	work domain.Work
}

func (d *workScanDest) destinations() []interface{} {
	return []interface{}{
		&d.work.ID, &d.work.Title, &d.work.CategoryID,
		&d.work.CompositionYear, &d.work.CompositionYearTo,
		&d.work.KeySignature, &d.work.FormOrGenre, &d.work.Comments,
		&d.work.Rating, &d.work.CreatedAt, &d.work.UpdatedAt,
	}
}

func (d *workScanDest) finalize() (*domain.Work, error) {
	return &d.work, nil
}

// scanWork scans a single row into a Work.
func scanWork(row pgx.Row) (*domain.Work, error) {
	var dest workScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}

// scanWorkFromRows scans the current row from pgx.Rows into a Work.
func scanWorkFromRows(rows pgx.Rows) (*domain.Work, error) {
	var dest workScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}
