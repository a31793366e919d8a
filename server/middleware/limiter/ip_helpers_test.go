// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		header     http.Header
		want       string
	}{
		{
			name:       "X-Real-IP from loopback proxy",
			remoteAddr: "127.0.0.1:12345",
			header:     http.Header{"X-Real-Ip": {"2.2.2.2"}},
			want:       "2.2.2.2",
		},
		{
			name:       "last X-Forwarded-For hop from private proxy",
			remoteAddr: "192.168.1.1:12345",
			header:     http.Header{"X-Forwarded-For": {"3.3.3.3, 4.4.4.4"}},
			want:       "4.4.4.4",
		},
		{
			name:       "headers from public peer are ignored",
			remoteAddr: "1.1.1.1:12345",
			header:     http.Header{"X-Real-Ip": {"2.2.2.2"}},
			want:       "1.1.1.1",
		},
		{
			name:       "no port",
			remoteAddr: "5.5.5.5",
			want:       "5.5.5.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &http.Request{RemoteAddr: tt.remoteAddr, Header: tt.header}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}

func TestIPMatchesList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ip      string
		entries []string
		want    bool
	}{
		{name: "exact", ip: "192.168.1.1", entries: []string{"192.168.1.1"}, want: true},
		{name: "cidr", ip: "192.168.1.1", entries: []string{"192.168.1.0/24"}, want: true},
		{name: "ipv6 spelled differently", ip: "2001:db8::1", entries: []string{"2001:0db8:0:0::1"}, want: true},
		{name: "outside", ip: "192.168.1.1", entries: []string{"10.0.0.0/8", "garbage"}, want: false},
		{name: "empty list", ip: "192.168.1.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ipMatchesList(net.ParseIP(tt.ip), tt.entries))
		})
	}
}

func TestGetNetwork(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.168.1.0/24", getNetwork(net.ParseIP("192.168.1.77"), 24, 48).String())
	assert.Equal(t, "2001:db8::/48", getNetwork(net.ParseIP("2001:db8::1"), 24, 48).String())
}
