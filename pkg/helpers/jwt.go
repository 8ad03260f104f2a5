package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and validates the bearer tokens kept in each
// user's token list. Two issuance modes share one secret and differ
// only in lifetime: a short-lived token on login and a long-lived one
// on extend.
type TokenIssuer struct {
	secret     []byte
	loginTTL   time.Duration
	refreshTTL time.Duration
}

type Claims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret string, loginTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		loginTTL:   loginTTL,
		refreshTTL: refreshTTL,
	}
}

// SignLogin issues the short-lived token handed out on login.
func (i *TokenIssuer) SignLogin(userID string) (string, error) {
	return i.sign(userID, i.loginTTL)
}

// SignRefresh issues the long-lived token that replaces a login token
// on extend.
func (i *TokenIssuer) SignRefresh(userID string) (string, error) {
	return i.sign(userID, i.refreshTTL)
}

func (i *TokenIssuer) sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			// Timestamps have second precision; the id keeps two
			// tokens issued in the same second distinct, so removing
			// one from a token list never removes the other.
			ID: uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies the signature and the expiry.
func (i *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr)
}

// ParseAllowExpired verifies the signature but tolerates an expired
// token. Logout and extend accept expired tokens: a login token may
// only live for a second, and it must still be tradeable for a
// long-lived one.
func (i *TokenIssuer) ParseAllowExpired(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, jwt.WithoutClaimsValidation())
}

func (i *TokenIssuer) parse(tokenStr string, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
