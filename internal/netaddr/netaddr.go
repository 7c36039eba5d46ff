// Package netaddr discovers the address other devices on the local network
// can use to reach this host.
package netaddr

import "net"

// defaultProbeAddr is a well-known public address used only to make the OS
// pick an outbound interface. UDP is connectionless, so no packet is sent.
const defaultProbeAddr = "8.8.8.8:80"

// LocalIP returns a best-effort LAN address for this host, as chosen by the
// OS routing table for outbound traffic. The result may still be behind NAT
// or firewalled from other devices. On any failure (no network interface,
// sandboxed environment) it returns the literal "localhost".
func LocalIP() string {
	return localIP(defaultProbeAddr)
}

func localIP(probeAddr string) string {
	conn, err := net.Dial("udp", probeAddr)
	if err != nil {
		return "localhost"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "localhost"
	}
	return addr.IP.String()
}
