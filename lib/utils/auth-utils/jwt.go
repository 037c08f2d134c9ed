package authutils

import (
	"recruit-backend/config"
	"recruit-backend/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func GetToken(userID int64, name string, role models.UserRole) (tokenString string, err error) {
	return SignToken(config.Conf.Auth.JWTSecret, userID, name, role, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec))
}

func SignToken(secret string, userID int64, name string, role models.UserRole, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// ClaimsUserID reads sub, sent either as a string or a number. Zero means anonymous.
func ClaimsUserID(claims jwt.MapClaims) int64 {
	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return 0
		}
		return id
	case float64:
		return int64(sub)
	}
	return 0
}

func ClaimsRole(claims jwt.MapClaims) models.UserRole {
	if role, ok := claims["role"].(string); ok {
		return models.UserRole(role)
	}
	return ""
}
