package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videogames-be/internal/entities"
)

func TestUserRepository_FindByEmailScansRoles(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "roles"}).
			AddRow(1, "admin@example.com", "$2a$10$hash", "{ROLE_ADMIN}"))

	user, err := NewUserRepository(db).FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, []string{entities.RoleAdmin}, user.Roles)
}

func TestUserRepository_FindByEmailMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM users").WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

	_, err := NewUserRepository(db).FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user@example.com", "$2a$10$hash", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := NewUserRepository(db).Create(context.Background(), &entities.User{
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
		Roles:        []string{entities.RoleUser},
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM users").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewUserRepository(db).Delete(context.Background(), 7), ErrNotFound)
}
