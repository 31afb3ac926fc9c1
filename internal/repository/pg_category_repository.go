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
var _ CategoryRepository = (*PgCategoryRepository)(nil)

// PgCategoryRepository is a PostgreSQL implementation of CategoryRepository.
type PgCategoryRepository struct {
	db DBTX
}

// NewPgCategoryRepository creates a new PostgreSQL category repository.
func NewPgCategoryRepository(db DBTX) *PgCategoryRepository {
	return &PgCategoryRepository{db: db}
}

// List retrieves all categories ordered by name.
func (r *PgCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description
		FROM category
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *PgCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, description
		FROM category
		WHERE id = $1`

	var c domain.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("category", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return &c, nil
}

// GetOrCreate retrieves an existing category by name or creates a new one.
// Uses a single INSERT...ON CONFLICT...RETURNING query to avoid two roundtrips.
func (r *PgCategoryRepository) GetOrCreate(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "category name cannot be empty or whitespace-only")
	}

	query := `
		INSERT INTO category (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET
			name = category.name
		RETURNING id, name, description`

	var c domain.Category
	err := r.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create category: %w", err)
	}

	return &c, nil
}
