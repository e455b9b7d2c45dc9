package repository

import (
	"context"
	"database/sql"

	"videogames-be/internal/entities"
)

// VideoGameRepository defines the interface for video game database operations.
// Loaded games always carry their category and editor.
type VideoGameRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entities.VideoGame, error)
	FindByID(ctx context.Context, id int64) (*entities.VideoGame, error)
	Create(ctx context.Context, game *entities.VideoGame) error
	Update(ctx context.Context, game *entities.VideoGame) error
	Delete(ctx context.Context, id int64) error
}

type videoGameRepository struct {
	db *sql.DB
}

// NewVideoGameRepository creates a new video game repository
func NewVideoGameRepository(db *sql.DB) VideoGameRepository {
	return &videoGameRepository{db: db}
}

const selectVideoGame = `
	SELECT g.id, g.title, g.release_date, g.description,
		c.id, c.name,
		e.id, e.name, e.country
	FROM video_games g
	JOIN categories c ON c.id = g.category_id
	JOIN editors e ON e.id = g.editor_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideoGame(row rowScanner) (*entities.VideoGame, error) {
	g := entities.VideoGame{
		Category: &entities.Category{},
		Editor:   &entities.Editor{},
	}
	err := row.Scan(
		&g.ID,
		&g.Title,
		&g.ReleaseDate,
		&g.Description,
		&g.Category.ID,
		&g.Category.Name,
		&g.Editor.ID,
		&g.Editor.Name,
		&g.Editor.Country,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *videoGameRepository) List(ctx context.Context, limit, offset int) ([]*entities.VideoGame, error) {
	rows, err := r.db.QueryContext(ctx, selectVideoGame+`
		ORDER BY g.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, mapError("list video games", err)
	}
	defer rows.Close()

	games := make([]*entities.VideoGame, 0, limit)
	for rows.Next() {
		g, err := scanVideoGame(rows)
		if err != nil {
			return nil, mapError("scan video game", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate video games", err)
	}
	return games, nil
}

func (r *videoGameRepository) FindByID(ctx context.Context, id int64) (*entities.VideoGame, error) {
	g, err := scanVideoGame(r.db.QueryRowContext(ctx, selectVideoGame+`WHERE g.id = $1`, id))
	if err != nil {
		return nil, mapError("find video game", err)
	}
	return g, nil
}

func (r *videoGameRepository) Create(ctx context.Context, game *entities.VideoGame) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO video_games (title, release_date, description, category_id, editor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, game.Title, game.ReleaseDate, game.Description, game.Category.ID, game.Editor.ID).Scan(&game.ID)
	return mapError("create video game", err)
}

func (r *videoGameRepository) Update(ctx context.Context, game *entities.VideoGame) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE video_games
		SET title = $1, release_date = $2, description = $3, category_id = $4, editor_id = $5
		WHERE id = $6
	`, game.Title, game.ReleaseDate, game.Description, game.Category.ID, game.Editor.ID, game.ID)
	if err != nil {
		return mapError("update video game", err)
	}
	return expectOneRow(result)
}

func (r *videoGameRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM video_games WHERE id = $1`, id)
	if err != nil {
		return mapError("delete video game", err)
	}
	return expectOneRow(result)
}
