package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"camserve/internal/server"
	"camserve/internal/version"
)

func main() {
	cfg := server.DefaultConfig()

	pflag.IntVar(&cfg.Port, "port", cfg.Port, "HTTPS listen port")
	pflag.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory to serve")
	pflag.StringVar(&cfg.CertFile, "cert", cfg.CertFile, "self-signed certificate file (created if absent)")
	pflag.StringSliceVar(&cfg.Hosts, "host", nil, "extra host names or IPs to include in the certificate")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("camserve %s\n", version.Version)
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg server.Config) error {
	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	return srv.Run(context.Background())
}
