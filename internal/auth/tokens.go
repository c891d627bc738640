package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token not valid for this use")
)

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

// Claims carries the account identity plus the token use ("access" or
// "refresh") so a refresh token can never authenticate an API request.
type Claims struct {
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenPair is the wire format returned by login, register, and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer signs and verifies HMAC-SHA256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clockwork.Clock
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration, clock clockwork.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clock,
	}
}

// IssuePair mints a fresh access/refresh token pair for the account.
func (i *TokenIssuer) IssuePair(accountID uuid.UUID) (*TokenPair, error) {
	access, err := i.sign(accountID, tokenUseAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.sign(accountID, tokenUseRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyAccess validates an access token and returns the account ID.
func (i *TokenIssuer) VerifyAccess(token string) (uuid.UUID, error) {
	return i.verify(token, tokenUseAccess)
}

// VerifyRefresh validates a refresh token and returns the account ID.
func (i *TokenIssuer) VerifyRefresh(token string) (uuid.UUID, error) {
	return i.verify(token, tokenUseRefresh)
}

func (i *TokenIssuer) sign(accountID uuid.UUID, use string, ttl time.Duration) (string, error) {
	now := i.clock.Now()
	claims := Claims{
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", use, err)
	}
	return signed, nil
}

func (i *TokenIssuer) verify(token, use string) (uuid.UUID, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.TokenUse != use {
		return uuid.Nil, ErrWrongTokenUse
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}
	return accountID, nil
}
