package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

var userColumns = []string{"id", "email", "password_hash", "role", "first_name", "last_name", "bio", "avatar", "is_active", "email_verified"}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				Email:        "student@example.com",
				PasswordHash: "hash",
				Role:         models.RoleStudent,
				FirstName:    "Ada",
				LastName:     "Lovelace",
				IsActive:     true,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			expectedError: false,
			expectedID:    42,
		},
		{
			name: "database error",
			user: &models.User{Email: "student@example.com"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "last insert id error",
			user: &models.User{Email: "student@example.com"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name:  "success",
			email: "student@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).
					AddRow(1, "student@example.com", "hash", int(models.RoleStudent), "Ada", "Lovelace", "", "", true, true)
				mock.ExpectQuery(`SELECT.*FROM users.*WHERE email = \?`).
					WithArgs("student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name:  "user not found",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT.*FROM users.*WHERE email = \?`).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "user not found",
		},
		{
			name:  "database error",
			email: "student@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT.*FROM users.*WHERE email = \?`).
					WithArgs("student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get user by email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, "student@example.com", result.Email)
				assert.Equal(t, models.RoleStudent, result.Role)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedValue bool
	}{
		{
			name:  "exists",
			email: "student@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE email = \?\)`).
					WithArgs("student@example.com").
					WillReturnRows(rows)
			},
			expectedValue: true,
		},
		{
			name:  "does not exist",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE email = \?\)`).
					WithArgs("missing@example.com").
					WillReturnRows(rows)
			},
			expectedValue: false,
		},
		{
			name:  "database error",
			email: "student@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE email = \?\)`).
					WithArgs("student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, exists)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateRole(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET role = \? WHERE id = \?`).
		WithArgs(int(models.RoleTutor), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRole(context.Background(), 1, models.RoleTutor)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
