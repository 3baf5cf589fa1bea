package connstring

import (
	"strings"
	"testing"
)

func TestConnectStringEmpty(t *testing.T) {
	cp := NewConnectParams()
	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "" {
		t.Errorf("connect string = %q, want empty (no target)", s)
	}
}

func TestConnectStringCanonicalForm(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Parse("(DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=h)(PORT=1521))(CONNECT_DATA=(SERVICE_NAME=orcl)))"); err != nil {
		t.Fatal(err)
	}
	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	want := "(DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=h)(PORT=1521))(CONNECT_DATA=(SERVICE_NAME=orcl)))"
	if s != want {
		t.Errorf("connect string:\n got %s\nwant %s", s, want)
	}
}

// Serialize-then-parse must reconstruct the same values for every field the
// canonical form carries.
func TestConnectStringRoundTrip(t *testing.T) {
	first := NewConnectParams()
	err := first.Parse("tcps://dbhost:1522/orclpdb?connect_timeout=5&retry_count=3&retry_delay=2&expire_time=4")
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("wallet_location", "/opt/wallet"); err != nil {
		t.Fatal(err)
	}

	text, err := first.ConnectString()
	if err != nil {
		t.Fatal(err)
	}

	second := NewConnectParams()
	if err := second.Parse(text); err != nil {
		t.Fatalf("reparsing %q: %v", text, err)
	}

	snapA, err := first.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	snapB, err := second.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	if snapB.Host != snapA.Host || snapB.Port != snapA.Port || snapB.Protocol != snapA.Protocol {
		t.Errorf("target changed: %s:%d/%s vs %s:%d/%s",
			snapA.Host, snapA.Port, snapA.Protocol, snapB.Host, snapB.Port, snapB.Protocol)
	}
	if snapB.ServiceName != snapA.ServiceName {
		t.Errorf("service = %q, want %q", snapB.ServiceName, snapA.ServiceName)
	}
	if snapB.TCPConnectTimeout != snapA.TCPConnectTimeout {
		t.Errorf("timeout = %v, want %v", snapB.TCPConnectTimeout, snapA.TCPConnectTimeout)
	}
	if snapB.RetryCount != snapA.RetryCount || snapB.RetryDelay != snapA.RetryDelay {
		t.Errorf("retry = %d/%d, want %d/%d", snapB.RetryCount, snapB.RetryDelay, snapA.RetryCount, snapA.RetryDelay)
	}
	if snapB.ExpireTime != snapA.ExpireTime {
		t.Errorf("expire_time = %d, want %d", snapB.ExpireTime, snapA.ExpireTime)
	}
	if snapB.WalletLocation != snapA.WalletLocation {
		t.Errorf("wallet = %q, want %q", snapB.WalletLocation, snapA.WalletLocation)
	}
	if snapB.SSLServerDNMatch != snapA.SSLServerDNMatch {
		t.Errorf("dn match = %v, want %v", snapB.SSLServerDNMatch, snapA.SSLServerDNMatch)
	}
}

func TestConnectStringFractionalTimeout(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Set("host", "h"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("tcp_connect_timeout", 2.5); err != nil {
		t.Fatal(err)
	}
	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "(TRANSPORT_CONNECT_TIMEOUT=2500ms)") {
		t.Errorf("connect string = %s, want 2500ms timeout", s)
	}
}

func TestConnectStringAddressList(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Parse("db1:1521,db2:1522/svc"); err != nil {
		t.Fatal(err)
	}
	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "(ADDRESS_LIST=") {
		t.Errorf("multiple candidates must serialize inside ADDRESS_LIST: %s", s)
	}

	second := NewConnectParams()
	if err := second.Parse(s); err != nil {
		t.Fatal(err)
	}
	addrs := second.Addresses()
	if len(addrs) != 2 || addrs[0].Host != "db1" || addrs[1].Host != "db2" || addrs[1].Port != 1522 {
		t.Errorf("reparsed addresses = %+v", addrs)
	}
}

func TestConnectStringCertDNRequiresDNMatch(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Set("host", "h"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("ssl_server_cert_dn", "CN=db.example.com"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("ssl_server_dn_match", false); err != nil {
		t.Fatal(err)
	}

	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "(SSL_SERVER_DN_MATCH=FALSE)") {
		t.Errorf("connect string = %s, want DN match off", s)
	}
	if strings.Contains(s, "SSL_SERVER_CERT_DN") {
		t.Errorf("cert DN must be omitted while DN matching is off: %s", s)
	}
}

func TestConnectStringQuotesAwkwardValues(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Set("host", "h"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("service_name", "svc with space"); err != nil {
		t.Fatal(err)
	}
	s, err := cp.ConnectString()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, `(SERVICE_NAME="svc with space")`) {
		t.Errorf("connect string = %s, want quoted service name", s)
	}

	second := NewConnectParams()
	if err := second.Parse(s); err != nil {
		t.Fatal(err)
	}
	if second.ServiceName() != "svc with space" {
		t.Errorf("reparsed service = %q", second.ServiceName())
	}
}

func TestConnectStringValidatesFirst(t *testing.T) {
	cp := NewConnectParams()
	if err := cp.Set("host", "h"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("edition", "e1"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("cclass", "app"); err != nil {
		t.Fatal(err)
	}
	if _, err := cp.ConnectString(); err == nil {
		t.Error("serializing an inconsistent set must fail validation")
	}
}
