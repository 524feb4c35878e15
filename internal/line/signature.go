// Package line implements the pieces of the LINE Messaging API this
// service touches: webhook signature verification, webhook payload
// types and the reply client.
package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// SignatureHeader carries the webhook signature on inbound requests.
const SignatureHeader = "x-line-signature"

// VerifySignature reports whether signature is the base64-encoded
// HMAC-SHA256 of the exact raw body bytes under secret. The comparison
// is constant-time. A missing secret or signature verifies false;
// malformed input never panics, it just fails.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
