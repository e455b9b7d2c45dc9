package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"videogames-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		pq.Array(&user.Roles),
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password, roles
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate users", err)
	}
	return users, nil
}

// FindByID finds a user by id
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password, roles
		FROM users
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, mapError("find user", err)
	}
	return user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password, roles
		FROM users
		WHERE email = $1
	`, email))
	if err != nil {
		return nil, mapError("find user", err)
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, roles)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Email, user.PasswordHash, pq.Array(user.Roles)).Scan(&user.ID)
	return mapError("create user", err)
}

func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, password = $2, roles = $3
		WHERE id = $4
	`, user.Email, user.PasswordHash, pq.Array(user.Roles), user.ID)
	if err != nil {
		return mapError("update user", err)
	}
	return expectOneRow(result)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("delete user", err)
	}
	return expectOneRow(result)
}
