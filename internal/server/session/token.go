package session

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries a State inside a HS256-signed JWT.
type Claims struct {
	jwt.RegisteredClaims
	State State `json:"st"`
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is how long an issued token stays valid.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs st. Every call restarts the expiry window.
func (c *Codec) Encode(st *State) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		State: *st,
	})
	return token.SignedString(c.secret)
}

// Decode verifies token and returns its State. It fails with
// common.ErrTokenExpired or common.ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (*State, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &claims.State, nil
}
