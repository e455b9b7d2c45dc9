package repository

import (
	"context"
	"database/sql"

	"videogames-be/internal/entities"
)

// CategoryRepository defines the interface for category database operations
type CategoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entities.Category, error)
	FindByID(ctx context.Context, id int64) (*entities.Category, error)
	Create(ctx context.Context, category *entities.Category) error
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns one page of categories in id order
func (r *categoryRepository) List(ctx context.Context, limit, offset int) ([]*entities.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0, limit)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, mapError("scan category", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate categories", err)
	}
	return categories, nil
}

// FindByID finds a category by id
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entities.Category, error) {
	var c entities.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, mapError("find category", err)
	}
	return &c, nil
}

// Create inserts the category and sets its generated id
func (r *categoryRepository) Create(ctx context.Context, category *entities.Category) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`, category.Name).Scan(&category.ID)
	return mapError("create category", err)
}

// Update writes every mutable column of the category
func (r *categoryRepository) Update(ctx context.Context, category *entities.Category) error {
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, category.Name, category.ID)
	if err != nil {
		return mapError("update category", err)
	}
	return expectOneRow(result)
}

// Delete removes a category; the foreign key rejects it while games reference it
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError("delete category", err)
	}
	return expectOneRow(result)
}
