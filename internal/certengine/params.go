// Package certengine generates and stores the self-signed certificate used
// by the camserve HTTPS listener. It has no HTTP concerns; it is the pure
// cryptographic layer.
package certengine

import (
	"crypto/x509"
	"time"
)

// Key algorithm. camserve uses ECDSA P-256 for the server key. It's fast,
// compact, and universally supported by modern TLS stacks and browsers.
const (
	// ECDSACurve is the elliptic curve used for the generated key.
	ECDSACurve = "P-256"
)

// Validity is how long the generated certificate is valid. One year is
// plenty for a local testing tool; the certificate is never renewed by
// camserve; delete the file to get a fresh one.
const Validity = 365 * 24 * time.Hour

// Default subject fields for the generated certificate.
const (
	DefaultCommonName   = "localhost"
	DefaultOrganization = "camserve"
)

// DefaultHosts are the subject alternative names baked into every
// certificate, before any caller-supplied hosts. They cover the URLs the
// startup banner prints for the local machine.
var DefaultHosts = []string{"localhost", "127.0.0.1", "::1"}

// KeyUsages defines the X.509 key usage flags for the certificate.
// DigitalSignature: required for ECDSA-based TLS handshakes. CertSign,
// together with IsCA, lets a client pin this certificate as its own trust
// root, the same shape `openssl req -x509` produces. KeyEncipherment is
// intentionally omitted: it is only valid for RSA keys and including it on
// an ECDSA cert violates RFC 5480.
const KeyUsages = x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign

// ExtKeyUsages defines the extended key usage for the certificate.
// ServerAuth only; camserve never authenticates as a client.
var ExtKeyUsages = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
