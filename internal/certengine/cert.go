package certengine

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"time"
)

// Certificate holds the server's private key and self-signed certificate.
type Certificate struct {
	Key  *ecdsa.PrivateKey
	Cert *x509.Certificate
	Raw  []byte // DER-encoded certificate
}

// Generate creates a new self-signed certificate and key pair valid for
// Validity from now. The subject alternative names are DefaultHosts plus the
// given extra hosts; entries that parse as IP literals become IP SANs,
// everything else becomes a DNS SAN. The private key is unencrypted.
func Generate(hosts []string) (*Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	serial, err := randomSerial()
	if err != nil {
		return nil, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{DefaultOrganization},
			CommonName:   DefaultCommonName,
		},
		NotBefore:             now,
		NotAfter:              now.Add(Validity),
		KeyUsage:              KeyUsages,
		ExtKeyUsage:           ExtKeyUsages,
		BasicConstraintsValid: true,
		IsCA:                  true, // lets a client pin this cert as its own root
	}

	for _, h := range dedupe(append(append([]string{}, DefaultHosts...), hosts...)) {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	// Self-signed: issuer = subject, signed with own key.
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}

	return &Certificate{
		Key:  key,
		Cert: cert,
		Raw:  der,
	}, nil
}

// TLSCertificate returns the certificate in the form crypto/tls expects for
// a server listener.
func (c *Certificate) TLSCertificate() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{c.Raw},
		PrivateKey:  c.Key,
		Leaf:        c.Cert,
	}
}

// randomSerial generates a random 128-bit serial number for a certificate.
// X.509 serial numbers must be positive integers. Using crypto/rand with 128
// bits makes collisions astronomically unlikely without needing a counter.
func randomSerial() (*big.Int, error) {
	max := new(big.Int).Lsh(big.NewInt(1), 128)
	serial, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, fmt.Errorf("generate random serial: %w", err)
	}
	return serial, nil
}

// dedupe removes duplicate hosts, preserving first-seen order.
func dedupe(hosts []string) []string {
	seen := make(map[string]bool, len(hosts))
	var result []string
	for _, h := range hosts {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		result = append(result, h)
	}
	return result
}
