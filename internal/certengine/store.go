package certengine

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

// The certificate and its private key live together in a single PEM file
// (a CERTIFICATE block followed by an EC PRIVATE KEY block), the same
// single-artifact layout `openssl req -x509 -keyout cert.pem -out cert.pem`
// produces. The key is unencrypted, so the file is written 0600.

const certFilePerms = 0600

// Store handles reading and writing the combined certificate file.
type Store struct {
	path string
}

// NewStore creates a Store for the given certificate file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the certificate file path.
func (s *Store) Path() string {
	return s.path
}

// Exists returns true if the certificate file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the certificate and key to the store's path.
func (s *Store) Save(cert *Certificate) error {
	keyDER, err := x509.MarshalECPrivateKey(cert.Key)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	data = append(data, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})...)

	return writeFileAtomic(s.path, data, certFilePerms)
}

// Load reads the certificate and key from disk.
// Returns nil, nil if the file does not exist yet.
func (s *Store) Load() (*Certificate, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var raw []byte
	var cert *x509.Certificate
	var key *ecdsa.PrivateKey

	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		switch block.Type {
		case "CERTIFICATE":
			c, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse cert from %s: %w", s.path, err)
			}
			raw, cert = block.Bytes, c
		case "EC PRIVATE KEY":
			k, err := x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse key from %s: %w", s.path, err)
			}
			key = k
		}
	}

	if cert == nil || key == nil {
		return nil, fmt.Errorf("%s: missing certificate or key PEM block", s.path)
	}
	if err := validateKeyMatchesCert(key, cert); err != nil {
		return nil, fmt.Errorf("%s: key/cert mismatch: %w", s.path, err)
	}

	return &Certificate{Key: key, Cert: cert, Raw: raw}, nil
}

// Ensure loads the certificate at path if one exists, and generates and
// saves a new one otherwise. It is idempotent: an existing file is never
// regenerated, whatever its contents' expiry. The returned bool reports
// whether a new certificate was generated.
func Ensure(path string, hosts []string) (*Certificate, bool, error) {
	store := NewStore(path)

	cert, err := store.Load()
	if err != nil {
		return nil, false, fmt.Errorf("load certificate: %w", err)
	}
	if cert != nil {
		return cert, false, nil
	}

	cert, err = Generate(hosts)
	if err != nil {
		return nil, false, fmt.Errorf("generate certificate: %w", err)
	}
	if err := store.Save(cert); err != nil {
		return nil, false, fmt.Errorf("save certificate: %w", err)
	}
	return cert, true, nil
}

func validateKeyMatchesCert(key *ecdsa.PrivateKey, cert *x509.Certificate) error {
	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return fmt.Errorf("certificate public key is not ECDSA")
	}
	if !key.PublicKey.Equal(pub) {
		return fmt.Errorf("private key does not match certificate public key")
	}
	return nil
}

// writeFileAtomic writes data to a temporary file then renames it into place.
// This prevents partial writes from corrupting an existing file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}
