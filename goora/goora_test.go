package goora

import (
	"strings"
	"testing"

	"github.com/orawire/connstring"
)

func snapshot(t *testing.T, connectString string, set map[string]any) connstring.Params {
	t.Helper()
	cp := connstring.NewConnectParams()
	for k, v := range set {
		if err := cp.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := cp.Parse(connectString); err != nil {
		t.Fatal(err)
	}
	p, err := cp.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestURL(t *testing.T) {
	p := snapshot(t, "dbhost:1522/orclpdb", map[string]any{
		"user":     "scott",
		"password": "tiger",
	})

	u := URL(p)
	for _, want := range []string{"oracle://", "scott", "dbhost:1522", "orclpdb"} {
		if !strings.Contains(u, want) {
			t.Errorf("url %q missing %q", u, want)
		}
	}
}

func TestURLTLSOptions(t *testing.T) {
	p := snapshot(t, "tcps://dbhost/orclpdb", map[string]any{
		"wallet_location":     "/opt/wallet",
		"ssl_server_dn_match": false,
	})

	u := URL(p)
	if !strings.Contains(u, "SSL=true") {
		t.Errorf("url %q missing SSL option", u)
	}
	if !strings.Contains(u, "SSL VERIFY=false") {
		t.Errorf("url %q missing SSL VERIFY option", u)
	}
	if !strings.Contains(u, "wallet") && !strings.Contains(u, "WALLET") {
		t.Errorf("url %q missing wallet option", u)
	}
}

func TestURLSIDFallback(t *testing.T) {
	p := snapshot(t, "(DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=h)(PORT=1521))(CONNECT_DATA=(SID=legacy)))", nil)

	u := URL(p)
	if !strings.Contains(u, "SID=legacy") {
		t.Errorf("url %q missing SID option", u)
	}
}
