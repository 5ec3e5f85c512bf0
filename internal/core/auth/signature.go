// Package auth verifies that a storefront request was relayed by the trusted
// proxy. The proxy signs the query string with HMAC-SHA256 over the sorted,
// concatenated key=value pairs, excluding the signature itself.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

const (
	ParamSignature = "signature"
	ParamHMAC      = "hmac"
)

// Authenticator checks request signatures against a shared secret. A zero
// Authenticator (empty secret) accepts everything.
type Authenticator struct {
	secret string
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

func (a *Authenticator) Enabled() bool {
	return a != nil && a.secret != ""
}

// Verify is a no-op when no secret is configured.
func (a *Authenticator) Verify(params url.Values) error {
	if !a.Enabled() {
		return nil
	}
	return Verify(params, a.secret)
}

// Verify checks params against secret. The signature is read from
// "signature", falling back to "hmac".
func Verify(params url.Values, secret string) error {
	provided := params.Get(ParamSignature)
	if provided == "" {
		provided = params.Get(ParamHMAC)
	}
	if provided == "" {
		return domain.ErrMissingSignature
	}

	expected := Sign(params, secret)
	if !hmac.Equal([]byte(expected), []byte(provided)) {
		return domain.ErrInvalidSignature
	}
	return nil
}

// Sign returns the lowercase hex HMAC-SHA256 of the canonical message.
func Sign(params url.Values, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(CanonicalMessage(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// CanonicalMessage sorts keys byte-wise and concatenates key=value with no
// separator. Repeated keys have their values joined with ",". The signature
// keys never take part.
func CanonicalMessage(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == ParamSignature || k == ParamHMAC {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(params[k], ","))
	}
	return b.String()
}
