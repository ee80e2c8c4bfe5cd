package utils

import (
	"coursework/backend/config"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every reason a token is rejected: absent, malformed,
// tampered, expired or without a subject.
var ErrInvalidToken = errors.New("invalid token")

func GenerateJWTToken(subject string, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseJWTToken проверяет подпись и срок действия и возвращает subject (логин)
func ParseJWTToken(tokenString string, cfg *config.Config) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// ExtractTokenString ищет токен в заголовке Authorization, cookie, query и форме
func ExtractTokenString(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie
	}
	if query := c.Query("token"); query != "" {
		return query
	}
	return c.FormValue("token")
}

const TokenCookie = "token"

func ExtractSubjectFromToken(c *fiber.Ctx, cfg *config.Config) (string, error) {
	return ParseJWTToken(ExtractTokenString(c), cfg)
}
