package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// SetupTestDB swaps the global DB for an in-memory SQLite instance.
func SetupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.DB = db
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Order{},
		&models.WebsiteRequest{},
		&models.Template{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

func createTestUser(t *testing.T, id uint, email string, credit int) models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Name:         fmt.Sprintf("User %d", id),
		Email:        email,
		BusinessName: "Biz",
		Password:     "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", // bcrypt("secret")
		Credit:       credit,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(t *testing.T, method, target string, body interface{}, user models.User) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+authToken(t, user))
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
