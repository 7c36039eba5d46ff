package server

import (
	"fmt"
	"strings"
)

// printBanner writes the operator-facing startup report: the local and LAN
// URLs plus a note about the self-signed certificate warning browsers show.
// lanIP is "localhost" when no LAN address could be discovered.
func (s *Server) printBanner(lanIP string) {
	w := s.out
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(w, "🎥 camserve - Local HTTPS Server")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n✅ Server started!\n")
	fmt.Fprintf(w, "\n📱 Access on this device:\n")
	fmt.Fprintf(w, "   https://localhost:%d\n", s.config.Port)
	fmt.Fprintf(w, "\n📱 Access on mobile (same WiFi):\n")
	fmt.Fprintf(w, "   https://%s:%d\n", lanIP, s.config.Port)
	fmt.Fprintf(w, "\n⚠️  Note: You'll need to accept the self-signed certificate warning\n")
	fmt.Fprintf(w, "    in your browser (this is normal for local development)\n\n")
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
	fmt.Fprintln(w, rule)
}
