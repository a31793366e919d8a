// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"strings"
)

// IPv4 and IPv6 address lengths in bits.
const (
	ipv4BitLength = 32
	ipv6BitLength = 128
)

// getClientIP returns the client address. X-Real-IP and X-Forwarded-For are
// only honoured when the peer is on a private or loopback network.
func getClientIP(r *http.Request) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = host
	}

	peer := net.ParseIP(remoteIP)
	if peer == nil || !(peer.IsPrivate() || peer.IsLoopback()) {
		return remoteIP
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	// The last hop was appended by our proxy.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")

		return strings.TrimSpace(hops[len(hops)-1])
	}

	return remoteIP
}

// ipMatchesList reports whether ip equals an entry or lies in a CIDR entry.
func ipMatchesList(ip net.IP, entries []string) bool {
	for _, entry := range entries {
		if _, subnet, err := net.ParseCIDR(entry); err == nil {
			if subnet.Contains(ip) {
				return true
			}

			continue
		}

		if other := net.ParseIP(entry); other != nil && other.Equal(ip) {
			return true
		}
	}

	return false
}

func getNetwork(ip net.IP, ipv4Prefix, ipv6Prefix int) *net.IPNet {
	mask := net.CIDRMask(ipv6Prefix, ipv6BitLength)
	if v4 := ip.To4(); v4 != nil {
		ip = v4
		mask = net.CIDRMask(ipv4Prefix, ipv4BitLength)
	}

	return &net.IPNet{IP: ip.Mask(mask), Mask: mask}
}
