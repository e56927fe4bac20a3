package route

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"routeplan/internal/pkg/errs"
)

// accessTokenBytes is the entropy of a freshly minted token. 16 random bytes
// encode to 32 hexadecimal characters, which is unguessable for the purpose of
// unauthenticated driver links.
const accessTokenBytes = 16

// ErrAccessTokenIsNotConstructed indicates that an AccessToken was not created
// through one of the constructor functions.
var ErrAccessTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"access token must be created via NewAccessToken or AccessTokenFromString",
)

// AccessToken is an opaque credential granting a driver access to exactly one
// route. It is the sole credential on the driver surface: whoever holds the
// token can read and update the route it was minted for.
//
// The token carries no expiry and no single-use enforcement.
type AccessToken struct {
	value string
}

// NewAccessToken mints a fresh random token.
func NewAccessToken() (AccessToken, error) {
	buf := make([]byte, accessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return AccessToken{}, fmt.Errorf("generate access token: %w", err)
	}

	return AccessToken{value: hex.EncodeToString(buf)}, nil
}

// AccessTokenFromString reconstructs a token from its persisted representation.
// Returns an error for an empty string.
func AccessTokenFromString(s string) (AccessToken, error) {
	if s == "" {
		return AccessToken{}, ErrAccessTokenIsNotConstructed
	}
	return AccessToken{value: s}, nil
}

// String returns the token value for transmission or persistence.
func (t AccessToken) String() string {
	return t.value
}

// IsEqual compares two tokens for equality.
func (t AccessToken) IsEqual(other AccessToken) bool {
	return t.value == other.value
}

// Validate checks if the token was properly constructed.
func (t AccessToken) Validate() error {
	if t.value == "" {
		return ErrAccessTokenIsNotConstructed
	}
	return nil
}
