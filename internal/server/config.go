// Package server implements the camserve HTTPS static-file server.
package server

// Config holds the configuration for the camserve server. It is constructed
// once at startup and never mutated afterwards.
type Config struct {
	// Port is the TCP port to listen on, across all interfaces.
	Port int

	// Dir is the document root served as static content.
	Dir string

	// CertFile is the path to the combined certificate/key PEM file.
	// Created on first run if absent.
	CertFile string

	// Hosts are extra DNS names or IP literals to include in the generated
	// certificate's SANs, on top of localhost/127.0.0.1/::1. Only consulted
	// when a new certificate is generated.
	// Example: ["cam.local", "192.168.1.50"]
	Hosts []string
}

// DefaultConfig returns the configuration used when camserve runs with no
// flags: port 8000, serving the working directory, cert.pem alongside it.
func DefaultConfig() Config {
	return Config{
		Port:     8000,
		Dir:      ".",
		CertFile: "cert.pem",
	}
}
