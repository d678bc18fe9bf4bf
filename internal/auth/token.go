package auth

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the external auth provider asserts about the caller.
// TokenIdentifier is the stable key used to look up the local User record.
type Identity struct {
	TokenIdentifier string
	Name            string
	Email           string
	ImageURL        string
}

var ErrNoIdentity = errors.New("token carries no subject claim")

// ParseIdentity validates a bearer token issued by the auth provider and
// extracts the caller identity from its claims.
func ParseIdentity(tokenString string) (*Identity, error) {
	jwtSecret := []byte(os.Getenv("AUTH_JWT_SECRET"))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrNoIdentity
	}

	identity := &Identity{TokenIdentifier: sub}

	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.ImageURL = picture
	}

	return identity, nil
}
