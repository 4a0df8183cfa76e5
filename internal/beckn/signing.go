package beckn

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces the HMAC-SHA256 request signature the registry
// expects over outbound payloads.
type Signer struct {
	key []byte
}

func NewSigner(key string) Signer {
	return Signer{key: []byte(key)}
}

// Sign returns the hex-encoded HMAC-SHA256 digest of body.
func (s Signer) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
