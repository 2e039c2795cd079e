package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

var (
	ErrMissingSecret = errors.New("session secret not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	SessionID string
	Role      Role
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) SetClock(now func() time.Time) {
	i.now = now
}

// Start opens a new session with a random ID and returns its token.
func (i *Issuer) Start(role Role) (Claims, string, error) {
	id := uuid.New().String()
	token, err := i.Issue(id, role)
	if err != nil {
		return Claims{}, "", err
	}
	return Claims{SessionID: id, Role: role, ExpiresAt: i.now().Add(i.ttl)}, token, nil
}

func (i *Issuer) Issue(sessionID string, role Role) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session ID passed to Issue")
	}

	claims := jwt.MapClaims{
		"sid":  sessionID,
		"role": string(role),
		"exp":  i.now().Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sid, _ := claims["sid"].(string)
	role, _ := claims["role"].(string)
	if sid == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{SessionID: sid, Role: Role(role)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
