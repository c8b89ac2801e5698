package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/snapsite-dev/storefront-client/storage"
)

var ErrNoToken = errors.New("no token stored")

// TokenKeeper holds the bearer JWT issued by the backend. The client
// never verifies the signature (it has no secret); it only inspects the
// expiry claim so it can route straight to login instead of burning a
// request on a guaranteed 401.
type TokenKeeper struct {
	store storage.Store
}

func NewTokenKeeper(store storage.Store) *TokenKeeper {
	return &TokenKeeper{store: store}
}

func (t *TokenKeeper) Save(token string) error {
	return t.store.Set(storage.KeyToken, token)
}

func (t *TokenKeeper) Load() (string, error) {
	token, err := t.store.Get(storage.KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	return token, nil
}

// Clear drops the stored token; called on logout and whenever the API
// answers 401.
func (t *TokenKeeper) Clear() error {
	return t.store.Delete(storage.KeyToken)
}

// Valid reports whether a token is stored and not yet expired. Tokens
// without an exp claim or that fail to parse are treated as invalid.
func (t *TokenKeeper) Valid() bool {
	raw, err := t.Load()
	if err != nil {
		return false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}
