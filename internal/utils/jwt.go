package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenWithoutSubject is returned when an identity token carries no "sub"
// claim.
var ErrTokenWithoutSubject = errors.New("token has no subject")

// ParseTokenSubject extracts the subject claim from an identity token
// without verifying its signature. The sync client never holds the signing
// key; the subject is used only to label logs and status output, and the
// server remains the authority on the token's validity.
//
// Example usage:
//
//	subject, err := utils.ParseTokenSubject(token)
//	if err != nil {
//	    // not a JWT, log without a subject
//	}
func ParseTokenSubject(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("error parsing identity token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error getting subject from token: %w", err)
	}
	if sub == "" {
		return "", ErrTokenWithoutSubject
	}

	return sub, nil
}
