package adapter

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// UsernameFromToken extracts the subject claim from a bearer token without
// verifying the signature. The client only uses it for display ("logged in
// as ..."); authorization decisions belong to the collaborator services.
func UsernameFromToken(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token carries no subject")
	}

	return sub, nil
}
