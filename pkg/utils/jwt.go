package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTPair struct {
	AccessToken  string
	RefreshToken string
}

func GenerateJWT(claims jwt.MapClaims, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()

	tokenClaims := jwt.MapClaims{}
	for key, value := range claims {
		tokenClaims[key] = value
	}
	tokenClaims["iat"] = now.Unix()
	tokenClaims["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	return token.SignedString(secret)
}

func GenerateJWTPair(claims jwt.MapClaims, accessTTL time.Duration, refreshTTL time.Duration, accessSecret []byte, refreshSecret []byte) (*JWTPair, error) {
	access, err := GenerateJWT(claims, accessTTL, accessSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := GenerateJWT(claims, refreshTTL, refreshSecret)
	if err != nil {
		return nil, err
	}

	return &JWTPair{AccessToken: access, RefreshToken: refresh}, nil
}

func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
