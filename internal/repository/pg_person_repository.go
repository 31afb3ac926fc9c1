package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// Compile-time interface verification.
var _ PersonRepository = (*PgPersonRepository)(nil)

// PgPersonRepository is a PostgreSQL implementation of PersonRepository.
type PgPersonRepository struct {
	db DBTX
}

// NewPgPersonRepository creates a new PostgreSQL person repository.
func NewPgPersonRepository(db DBTX) *PgPersonRepository {
	return &PgPersonRepository{db: db}
}

// GetByID retrieves a person by ID.
func (r *PgPersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `
		SELECT id, full_name, birth_year, death_year, notes
		FROM person
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("person", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get person by ID: %w", err)
	}

	return p, nil
}

// GetOrCreate retrieves an existing person by full name or creates a new one.
// Uses a single INSERT...ON CONFLICT...RETURNING query to avoid two roundtrips.
func (r *PgPersonRepository) GetOrCreate(ctx context.Context, fullName string) (*domain.Person, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domain.NewValidationError("full_name", "person name cannot be empty or whitespace-only")
	}

	query := `
		INSERT INTO person (full_name)
		VALUES ($1)
		ON CONFLICT (full_name) DO UPDATE SET
			full_name = person.full_name
		RETURNING id, full_name, birth_year, death_year, notes`

	row := r.db.QueryRow(ctx, query, fullName)
	p, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create person: %w", err)
	}

	return p, nil
}

// BulkGetOrCreate retrieves or creates multiple people in a single statement.
// Lifespan fields are applied on insert only; an existing row keeps its
// recorded years even if a later CSV disagrees.
func (r *PgPersonRepository) BulkGetOrCreate(ctx context.Context, people []*domain.Person) ([]*domain.Person, error) {
	if len(people) == 0 {
		return []*domain.Person{}, nil
	}

	// Deduplicate by full name, keeping first occurrence.
	var deduped []*domain.Person
	seen := make(map[string]bool)

	for i, p := range people {
		if p == nil {
			return nil, domain.NewValidationError("people", fmt.Sprintf("person at index %d is nil", i))
		}
		name := strings.TrimSpace(p.FullName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		deduped = append(deduped, &domain.Person{
			FullName:  name,
			BirthYear: p.BirthYear,
			DeathYear: p.DeathYear,
			Notes:     p.Notes,
		})
	}

	if len(deduped) == 0 {
		return []*domain.Person{}, nil
	}

	var valueStrings []string
	var args []interface{}

	for i, p := range deduped {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d)",
			i*4+1, i*4+2, i*4+3, i*4+4))
		args = append(args, p.FullName, p.BirthYear, p.DeathYear, p.Notes)
	}

	query := fmt.Sprintf(`
		INSERT INTO person (full_name, birth_year, death_year, notes)
		VALUES %s
		ON CONFLICT (full_name) DO UPDATE SET
			full_name = person.full_name
		RETURNING id, full_name, birth_year, death_year, notes`,
		strings.Join(valueStrings, ", "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk get or create people: %w", err)
	}
	defer rows.Close()

	// Collect results into a map by full name for ordering.
	resultMap := make(map[string]*domain.Person)
	for rows.Next() {
		p, err := scanPersonFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		resultMap[p.FullName] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	results := make([]*domain.Person, 0, len(deduped))
	for _, p := range deduped {
		if got, ok := resultMap[p.FullName]; ok {
			results = append(results, got)
		}
	}

	return results, nil
}

// List retrieves people matching the filter, ordered by full name.
func (r *PgPersonRepository) List(ctx context.Context, filter PersonFilter) ([]*domain.Person, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.NameContains != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argIndex))
		// Escape LIKE special characters to prevent pattern injection.
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter.NameContains)
		args = append(args, "%"+escaped+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM person %s", whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, full_name, birth_year, death_year, notes
		FROM person
		%s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := make([]*domain.Person, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPersonFromRows(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating people: %w", err)
	}

	return people, totalCount, nil
}

// personScanDest holds the destination pointers for scanning a Person row.
type personScanDest struct {
	person domain.Person
}

func (d *personScanDest) destinations() []interface{} {
	return []interface{}{
		&d.person.ID, &d.person.FullName, &d.person.BirthYear,
		&d.person.DeathYear, &d.person.Notes,
	}
}

func (d *personScanDest) finalize() (*domain.Person, error) {
	return &d.person, nil
}

// scanPerson scans a single row into a Person.
func scanPerson(row pgx.Row) (*domain.Person, error) {
	var dest personScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}

// scanPersonFromRows scans the current row from pgx.Rows into a Person.
func scanPersonFromRows(rows pgx.Rows) (*domain.Person, error) {
	var dest personScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}
