package chat

import (
	"fmt"
	"log"

	config "github.com/framestack/framestack_backend/configs"
	"github.com/framestack/framestack_backend/models"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// AuthenticateToken resolves the access token carried on the websocket
// handshake query string. Every failure mode (missing, malformed, bad
// signature, expired, unknown user) yields nil — anonymous. The caller
// decides whether to refuse the connection.
func AuthenticateToken(db *gorm.DB, raw string) *models.User {
	if raw == "" {
		return nil
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		log.Printf("Chat token rejected: %v", err)
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		log.Println("Chat token rejected: no numeric user_id claim")
		return nil
	}

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		log.Printf("Chat token rejected: user %d not found", uint(id))
		return nil
	}
	return &user
}
