package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/auth/service"
	"github.com/dev13-Vishnu/deep-learn-server/internal/config"
	"github.com/dev13-Vishnu/deep-learn-server/internal/handlers"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/dev13-Vishnu/deep-learn-server/internal/repositories"
	"github.com/dev13-Vishnu/deep-learn-server/internal/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

// stubOtpVerifier treats every email as already verified so the signup
// flow can run without a Redis instance
type stubOtpVerifier struct{}

func (s *stubOtpVerifier) VerifyOtp(ctx context.Context, email, purpose, code string) error {
	return nil
}

func (s *stubOtpVerifier) ConsumeVerification(ctx context.Context, email, purpose string) error {
	return nil
}

// seedTestData inserts test data into the database
func seedTestData(t *testing.T, db *sql.DB) {
	t.Helper()

	// Clear existing data
	_, err := db.Exec("DELETE FROM user_tokens")
	require.NoError(t, err, "Failed to clear user_tokens")
	_, err = db.Exec("DELETE FROM users")
	require.NoError(t, err, "Failed to clear users")

	// Reset AUTO_INCREMENT
	_, err = db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	require.NoError(t, err, "Failed to reset users AUTO_INCREMENT")
	_, err = db.Exec("ALTER TABLE user_tokens AUTO_INCREMENT = 1")
	require.NoError(t, err, "Failed to reset user_tokens AUTO_INCREMENT")

	// Insert test user with known password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err, "Failed to hash password")

	query := `INSERT INTO users (email, password_hash, role, first_name, last_name, is_active, email_verified) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = db.Exec(query, "test@example.com", string(passwordHash), models.RoleStudent, "Test", "User", true, true)
	require.NoError(t, err, "Failed to seed test user")
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM user_tokens")
	require.NoError(t, err, "Failed to cleanup user_tokens")
	_, err = db.Exec("DELETE FROM users")
	require.NoError(t, err, "Failed to cleanup users")
}

// getCookieValue extracts a cookie value from the response
func getCookieValue(w *httptest.ResponseRecorder, name string) string {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// setupTestRouter creates a test router with the auth handler
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	userRepo := repositories.NewUserRepository(db, logger)
	tokenRepo := repositories.NewUserTokenRepository(db, logger)
	tokenGen := service.NewTokenGenerator("test-secret-key-for-integration-tests", 1*time.Hour, 7*24*time.Hour)
	authSvc := services.NewAuthService(userRepo, tokenRepo, &stubOtpVerifier{}, tokenGen, logger)
	otpSvc := services.NewOtpService(nil, nil, logger)
	authHandler := handlers.NewAuthHandler(authSvc, otpSvc, logger)

	r := chi.NewRouter()
	// Scope router to /api/v1 to match main.go setup
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, func(next http.Handler) http.Handler { return next })
	})

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Setup test database
	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	dsn := cfg.DSN()
	if cfg.Database.Host == "" {
		// Default test database connection
		dsn = "root:password@tcp(localhost:3306)/deeplearn_test?parseTime=true&charset=utf8mb4"
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	// Test connection
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	// Setup test schema
	setupTestSchemaForMain(testDB)

	// Setup test router
	testRouter = setupTestRouter(testDB, testLogger)

	// Run tests
	code := m.Run()

	// Cleanup
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// setupTestSchemaForMain creates the test database schema (for TestMain)
func setupTestSchemaForMain(db *sql.DB) {
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id INT PRIMARY KEY AUTO_INCREMENT,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role INT NOT NULL DEFAULT 1,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			bio TEXT,
			avatar VARCHAR(512),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	userTokensTable := `
		CREATE TABLE IF NOT EXISTS user_tokens (
			id INT PRIMARY KEY AUTO_INCREMENT,
			user_id INT NOT NULL,
			token CHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_token (token),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	db.Exec(usersTable)
	db.Exec(userTokensTable)
}

func TestIntegration_Register(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
		validateFunc   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success valid registration",
			requestBody: map[string]string{
				"email":     "newuser@example.com",
				"password":  "Password123!",
				"otp":       "123456",
				"firstName": "New",
				"lastName":  "User",
			},
			expectedStatus: http.StatusCreated,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response models.TokenPairResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.AccessToken)
				assert.NotEmpty(t, response.RefreshToken)

				// Tokens are also set as HTTP-only cookies
				assert.NotEmpty(t, getCookieValue(w, "access_token"), "access token should be set in cookie")
				assert.NotEmpty(t, getCookieValue(w, "refresh_token"), "refresh token should be set in cookie")

				// Verify user was created in database
				var count int
				err = testDB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "newuser@example.com").Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 1, count)

				// Verify password is hashed (not stored as plaintext)
				var passwordHash string
				err = testDB.QueryRow("SELECT password_hash FROM users WHERE email = ?", "newuser@example.com").Scan(&passwordHash)
				require.NoError(t, err)
				assert.NotEqual(t, "Password123!", passwordHash)
				assert.True(t, len(passwordHash) > 50) // bcrypt hashes are typically 60 characters

				// The stored refresh token is a SHA-256 digest, never the raw token
				var storedToken string
				err = testDB.QueryRow("SELECT token FROM user_tokens ORDER BY id DESC LIMIT 1").Scan(&storedToken)
				require.NoError(t, err)
				assert.NotEqual(t, response.RefreshToken, storedToken)
				assert.Len(t, storedToken, 64)
			},
		},
		{
			name: "duplicate email",
			requestBody: map[string]string{
				"email":     "test@example.com",
				"password":  "Password123!",
				"otp":       "123456",
				"firstName": "Another",
				"lastName":  "User",
			},
			expectedStatus: http.StatusBadRequest,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response map[string]string
				err := json.NewDecoder(w.Body).Decode(&response)
				require.NoError(t, err)
				assert.Contains(t, response["error"], "email already exists")
			},
		},
		{
			name: "invalid email format",
			requestBody: map[string]string{
				"email":     "invalid-email",
				"password":  "Password123!",
				"otp":       "123456",
				"firstName": "Valid",
				"lastName":  "User",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid password - too short",
			requestBody: map[string]string{
				"email":     "valid@example.com",
				"password":  "Pass1!",
				"otp":       "123456",
				"firstName": "Valid",
				"lastName":  "User",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing first name",
			requestBody: map[string]string{
				"email":    "valid@example.com",
				"password": "Password123!",
				"otp":      "123456",
				"lastName": "User",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanupTestData(t, testDB)
			seedTestData(t, testDB)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			testRouter.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(t, w)
			}
		})
	}
}

func TestIntegration_Login(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
		validateFunc   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success valid credentials",
			requestBody: map[string]string{
				"email":    "test@example.com",
				"password": "Password123!",
			},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response models.TokenPairResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.AccessToken)
				assert.NotEmpty(t, response.RefreshToken)
				assert.NotEmpty(t, getCookieValue(w, "access_token"))
				assert.NotEmpty(t, getCookieValue(w, "refresh_token"))
			},
		},
		{
			name: "wrong password",
			requestBody: map[string]string{
				"email":    "test@example.com",
				"password": "WrongPassword1!",
			},
			expectedStatus: http.StatusUnauthorized,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response map[string]string
				err := json.NewDecoder(w.Body).Decode(&response)
				require.NoError(t, err)
				assert.Contains(t, response["error"], "invalid credentials")
			},
		},
		{
			name: "unknown email",
			requestBody: map[string]string{
				"email":    "nobody@example.com",
				"password": "Password123!",
			},
			expectedStatus: http.StatusUnauthorized,
			validateFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response map[string]string
				err := json.NewDecoder(w.Body).Decode(&response)
				require.NoError(t, err)
				// Same message as a wrong password, no account enumeration
				assert.Contains(t, response["error"], "invalid credentials")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanupTestData(t, testDB)
			seedTestData(t, testDB)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			testRouter.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(t, w)
			}
		})
	}
}

func TestIntegration_RefreshAndLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	cleanupTestData(t, testDB)
	seedTestData(t, testDB)

	// Login to obtain a token pair
	body, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "Password123!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResponse models.TokenPairResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loginResponse))

	// Refresh rotates the pair
	body, _ = json.Marshal(map[string]string{"refreshToken": loginResponse.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var refreshResponse models.TokenPairResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&refreshResponse))
	assert.NotEqual(t, loginResponse.RefreshToken, refreshResponse.RefreshToken)

	// The old refresh token is no longer accepted
	body, _ = json.Marshal(map[string]string{"refreshToken": loginResponse.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout invalidates the current token
	body, _ = json.Marshal(map[string]string{"refreshToken": refreshResponse.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM user_tokens").Scan(&count))
	assert.Equal(t, 0, count)
}
