package entity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	Token      string `json:"token"`
}

func (s Session) IsZero() bool {
	return s.UserID == "" && s.Token == ""
}

// TokenExpiry reads the exp claim without verifying the signature.
// It is informational only, nothing is gated on it.
func (s Session) TokenExpiry() (time.Time, bool, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(s.Token, claims)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read exp claim: %w", err)
	}

	if exp == nil {
		return time.Time{}, false, nil
	}

	return exp.Time, true, nil
}
