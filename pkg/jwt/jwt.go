package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidTicket is returned for malformed, expired, foreign or tampered undo tickets.
var ErrInvalidTicket = errors.New("jwt: invalid undo ticket")

// UndoClaims identify a soft-deleted customer. Subject holds the customer id.
type UndoClaims struct {
	jwt.RegisteredClaims
	CustomerName string `json:"name"`
}

// CustomerID parses the subject.
func (c *UndoClaims) CustomerID() (int, error) {
	return strconv.Atoi(c.Subject)
}

// GenerateUndo signs a ticket for customerID that expires after ttl.
func GenerateUndo(secret, issuer string, customerID int, name string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := UndoClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.Itoa(customerID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		CustomerName: name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}

// ParseUndo validates the ticket and returns the customer id and name it carries.
func ParseUndo(secret, issuer, tokenString string) (int, string, error) {
	if secret == "" {
		return 0, "", fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &UndoClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	claims, ok := token.Claims.(*UndoClaims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidTicket
	}
	id, err := claims.CustomerID()
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("%w: bad subject %q", ErrInvalidTicket, claims.Subject)
	}
	return id, claims.CustomerName, nil
}
