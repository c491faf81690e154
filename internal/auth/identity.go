package auth

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedUsername is returned when a federated username does not have
// the "<Provider>_<ProviderUserId>" shape.
var ErrMalformedUsername = errors.New("malformed federated username")

const usernameDelimiter = "_"

// Identity represents an external identity as carried by a federated
// signup username. It contains facts only, no decisions.
type Identity struct {
	Provider       string // normalized provider name, e.g. "Google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
}

// ParseUsername splits a federated username such as "Google_1234" or
// "facebook_5678" on its first delimiter and normalizes the provider name.
func ParseUsername(userName string) (Identity, error) {
	provider, userID, ok := strings.Cut(userName, usernameDelimiter)
	if !ok || provider == "" || userID == "" {
		return Identity{}, ErrMalformedUsername
	}

	return Identity{
		Provider:       NormalizeProviderName(provider),
		ProviderUserID: userID,
	}, nil
}

// NormalizeProviderName upper-cases the first character and leaves the rest
// untouched, so "google" becomes "Google" but "FACEBOOK" stays "FACEBOOK".
func NormalizeProviderName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
