package jwt

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Export download links stay valid for 15 minutes.
const TokenExpiryDownload = 15 * time.Minute

// GenerateDownloadToken signs a short-lived token authorizing one export
// download for the given memorial.
func GenerateDownloadToken(userID uint, memorialID string) (string, error) {
	secretKey := []byte(os.Getenv("JWT_SECRET"))

	claims := jwt.MapClaims{
		"user_id":     userID,
		"memorial_id": memorialID,
		"exp":         time.Now().Add(TokenExpiryDownload).Unix(),
		"iat":         time.Now().Unix(),
		"type":        "export_download",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateDownloadToken returns the memorial the token authorizes, or an
// error for anything expired, malformed, or of the wrong type.
func ValidateDownloadToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	if claims["type"] != "export_download" {
		return 0, "", fmt.Errorf("wrong token type")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid user_id claim")
	}
	memorialID, ok := claims["memorial_id"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid memorial_id claim")
	}

	return uint(userIDFloat), memorialID, nil
}
