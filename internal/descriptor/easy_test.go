package descriptor

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Easy Connect parsing
// ---------------------------------------------------------------------------

func TestParseEasyConnect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		protocol string
		hosts    []string
		ports    []string
		service  string
		server   string
	}{
		{
			"host only",
			"dbhost",
			"", []string{"dbhost"}, []string{""}, "", "",
		},
		{
			"host port service",
			"dbhost:1522/orclpdb",
			"", []string{"dbhost"}, []string{"1522"}, "orclpdb", "",
		},
		{
			"full form with protocol",
			"tcps://dbhost.example.com:1522/orclpdb",
			"tcps", []string{"dbhost.example.com"}, []string{"1522"}, "orclpdb", "",
		},
		{
			"service only",
			"/orclpdb",
			"", nil, nil, "orclpdb", "",
		},
		{
			"server type suffix",
			"dbhost/orclpdb:pooled",
			"", []string{"dbhost"}, []string{""}, "orclpdb", "pooled",
		},
		{
			"ipv6 literal",
			"[::1]:1521/svc",
			"", []string{"::1"}, []string{"1521"}, "svc", "",
		},
		{
			"failover list",
			"db1:1521,db2:1522,db3/svc",
			"", []string{"db1", "db2", "db3"}, []string{"1521", "1522", ""}, "svc", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ez, err := ParseEasyConnect(tt.input)
			if err != nil {
				t.Fatalf("ParseEasyConnect(%q): %v", tt.input, err)
			}
			if ez.Protocol != tt.protocol {
				t.Errorf("protocol = %q, want %q", ez.Protocol, tt.protocol)
			}
			if len(ez.Addresses) != len(tt.hosts) {
				t.Fatalf("got %d addresses, want %d", len(ez.Addresses), len(tt.hosts))
			}
			for i, addr := range ez.Addresses {
				if addr.Host != tt.hosts[i] {
					t.Errorf("host[%d] = %q, want %q", i, addr.Host, tt.hosts[i])
				}
				if addr.Port != tt.ports[i] {
					t.Errorf("port[%d] = %q, want %q", i, addr.Port, tt.ports[i])
				}
			}
			if ez.ServiceName != tt.service {
				t.Errorf("service = %q, want %q", ez.ServiceName, tt.service)
			}
			if ez.ServerType != tt.server {
				t.Errorf("server type = %q, want %q", ez.ServerType, tt.server)
			}
		})
	}
}

func TestParseEasyConnectQueryParams(t *testing.T) {
	ez, err := ParseEasyConnect("dbhost/orcl?connect_timeout=5&SSL_SERVER_DN_MATCH=false&tag=a%3Db")
	if err != nil {
		t.Fatalf("ParseEasyConnect: %v", err)
	}
	want := []Assignment{
		{Key: "connect_timeout", Value: "5"},
		{Key: "ssl_server_dn_match", Value: "false"},
		{Key: "tag", Value: "a=b"}, // URL-decoded
	}
	if len(ez.Params) != len(want) {
		t.Fatalf("got %d params, want %d", len(ez.Params), len(want))
	}
	for i, p := range ez.Params {
		if p != want[i] {
			t.Errorf("param[%d] = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestParseEasyConnectErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"non-numeric port", "dbhost:abc/svc", "port must be numeric"},
		{"unterminated bracket", "[::1/svc", "unterminated IPv6 bracket"},
		{"text after bracket", "[::1]x:1521", "unexpected text after IPv6"},
		{"query without equals", "dbhost/svc?timeout", "without '='"},
		{"empty protocol", "://dbhost", "empty protocol"},
		{"bad escape", "dbhost/svc?tag=%zz", "bad escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEasyConnect(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseEasyConnectErrorPosition(t *testing.T) {
	_, err := ParseEasyConnect("dbhost:notaport/svc")
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if synErr.Token != "notaport" {
		t.Errorf("offending token = %q, want notaport", synErr.Token)
	}
}
