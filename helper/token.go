package helper

import (
	"errors"
	"os"
	"time"

	"driftsip_admin/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateTokens phát access + refresh token cho account
func GenerateTokens(account model.Account) (model.TokenData, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accountId": account.ID,
		"username":  account.Username,
		"isAdmin":   account.IsAdmin,
		"exp":       now.Add(accessTokenTTL).Unix(),
	})
	accessStr, err := access.SignedString(jwtSecret())
	if err != nil {
		return model.TokenData{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accountId": account.ID,
		"refresh":   true,
		"exp":       now.Add(refreshTokenTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString(jwtSecret())
	if err != nil {
		return model.TokenData{}, err
	}

	return model.TokenData{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}

// ParseRefreshToken đọc accountId từ refresh token
func ParseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["refresh"] != true {
		return 0, errors.New("not a refresh token")
	}
	id, ok := claims["accountId"].(float64)
	if !ok {
		return 0, errors.New("missing accountId")
	}
	return uint(id), nil
}

// GetInfoAccountFromToken lấy claim từ token đã được middleware parse
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false
	}

	claim := model.TokenClaim{}
	if id, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(id)
	}
	if username, ok := claims["username"].(string); ok {
		claim.Username = username
	}
	if isAdmin, ok := claims["isAdmin"].(bool); ok {
		claim.IsAdmin = isAdmin
	}
	return claim, claim.AccountId > 0
}
