// Package identity classifies the caller of a request as an authenticated
// user or an anonymous visitor keyed by a header fingerprint.
//
// The fingerprint is an approximation. Visitors sharing a proxy and browser
// configuration collide into one key, and a visitor whose headers change gets
// a new key and loses earlier anonymous likes.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/middleware"
)

// FingerprintLength is the number of hex characters kept from the digest
const FingerprintLength = 16

var fingerprintHeaders = []string{
	"User-Agent",
	"Accept-Language",
	"Accept-Encoding",
	"X-Forwarded-For",
	"X-Real-Ip",
}

// Fingerprint hashes the identifying request headers into a short hex key
func Fingerprint(h http.Header) string {
	parts := make([]string, len(fingerprintHeaders))
	for i, name := range fingerprintHeaders {
		parts[i] = h.Get(name)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}

// Resolve returns the caller identity. A user id placed in the context by the
// auth middleware wins; otherwise the header fingerprint is used.
func Resolve(r *http.Request) domain.Identity {
	if userID, ok := middleware.GetUserID(r.Context()); ok && userID != "" {
		return domain.AuthenticatedIdentity(userID)
	}
	return domain.AnonymousIdentity(Fingerprint(r.Header))
}
