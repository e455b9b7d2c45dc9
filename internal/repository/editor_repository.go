package repository

import (
	"context"
	"database/sql"

	"videogames-be/internal/entities"
)

// EditorRepository defines the interface for editor database operations
type EditorRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entities.Editor, error)
	FindByID(ctx context.Context, id int64) (*entities.Editor, error)
	Create(ctx context.Context, editor *entities.Editor) error
	Update(ctx context.Context, editor *entities.Editor) error
	Delete(ctx context.Context, id int64) error
}

type editorRepository struct {
	db *sql.DB
}

// NewEditorRepository creates a new editor repository
func NewEditorRepository(db *sql.DB) EditorRepository {
	return &editorRepository{db: db}
}

func (r *editorRepository) List(ctx context.Context, limit, offset int) ([]*entities.Editor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country
		FROM editors
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, mapError("list editors", err)
	}
	defer rows.Close()

	editors := make([]*entities.Editor, 0, limit)
	for rows.Next() {
		var e entities.Editor
		if err := rows.Scan(&e.ID, &e.Name, &e.Country); err != nil {
			return nil, mapError("scan editor", err)
		}
		editors = append(editors, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate editors", err)
	}
	return editors, nil
}

func (r *editorRepository) FindByID(ctx context.Context, id int64) (*entities.Editor, error) {
	var e entities.Editor
	err := r.db.QueryRowContext(ctx, `SELECT id, name, country FROM editors WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Country)
	if err != nil {
		return nil, mapError("find editor", err)
	}
	return &e, nil
}

func (r *editorRepository) Create(ctx context.Context, editor *entities.Editor) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO editors (name, country)
		VALUES ($1, $2)
		RETURNING id
	`, editor.Name, editor.Country).Scan(&editor.ID)
	return mapError("create editor", err)
}

func (r *editorRepository) Update(ctx context.Context, editor *entities.Editor) error {
	result, err := r.db.ExecContext(ctx, `UPDATE editors SET name = $1, country = $2 WHERE id = $3`,
		editor.Name, editor.Country, editor.ID)
	if err != nil {
		return mapError("update editor", err)
	}
	return expectOneRow(result)
}

func (r *editorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM editors WHERE id = $1`, id)
	if err != nil {
		return mapError("delete editor", err)
	}
	return expectOneRow(result)
}
