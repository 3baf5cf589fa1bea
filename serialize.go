package connstring

import (
	"fmt"
	"strconv"
	"strings"
)

// ConnectString serializes the current parameter set into canonical full
// connect descriptor text. Parsing the result reconstructs an equivalent
// parameter set for every preserved field; the original textual form is not
// reproduced (an alias serializes as its expansion). With no host and no
// addresses there is nothing to serialize and the result is empty.
func (cp *ConnectParams) ConnectString() (string, error) {
	if err := cp.Validate(); err != nil {
		return "", err
	}
	p := &cp.p
	if p.Host == "" && len(p.Addresses) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("(DESCRIPTION=")

	if p.RetryCount > 0 {
		fmt.Fprintf(&b, "(RETRY_COUNT=%d)", p.RetryCount)
	}
	if p.RetryDelay > 0 {
		fmt.Fprintf(&b, "(RETRY_DELAY=%d)", p.RetryDelay)
	}
	if cp.isSet("tcp_connect_timeout") {
		fmt.Fprintf(&b, "(TRANSPORT_CONNECT_TIMEOUT=%s)", formatSeconds(p.TCPConnectTimeout))
	}
	if p.ExpireTime > 0 {
		fmt.Fprintf(&b, "(EXPIRE_TIME=%d)", p.ExpireTime)
	}
	if cp.isSet("sdu") {
		fmt.Fprintf(&b, "(SDU=%d)", p.SDU)
	}

	addrs := p.Addresses
	if len(addrs) == 0 {
		addrs = []Address{{Protocol: p.Protocol, Host: p.Host, Port: p.Port, HTTPSProxy: p.HTTPSProxy, HTTPSProxyPort: p.HTTPSProxyPort}}
	}
	if len(addrs) > 1 {
		b.WriteString("(ADDRESS_LIST=")
	}
	for _, addr := range addrs {
		writeAddress(&b, addr)
	}
	if len(addrs) > 1 {
		b.WriteString(")")
	}

	var data strings.Builder
	if p.ServiceName != "" {
		fmt.Fprintf(&data, "(SERVICE_NAME=%s)", quoteValue(p.ServiceName))
	}
	if p.SID != "" {
		fmt.Fprintf(&data, "(SID=%s)", quoteValue(p.SID))
	}
	if p.ServerType != ServerDefault {
		fmt.Fprintf(&data, "(SERVER=%s)", p.ServerType)
	}
	if p.CClass != "" {
		fmt.Fprintf(&data, "(POOL_CONNECTION_CLASS=%s)", quoteValue(p.CClass))
	}
	if p.Purity != PurityDefault {
		fmt.Fprintf(&data, "(POOL_PURITY=%s)", strings.ToUpper(p.Purity.String()))
	}
	if data.Len() > 0 {
		fmt.Fprintf(&b, "(CONNECT_DATA=%s)", data.String())
	}

	if p.Protocol == ProtocolTCPS || cp.isSet("ssl_server_dn_match") || p.SSLServerCertDN != "" || p.WalletLocation != "" {
		b.WriteString("(SECURITY=")
		fmt.Fprintf(&b, "(SSL_SERVER_DN_MATCH=%s)", upperBool(p.SSLServerDNMatch))
		// A certificate DN only means something while DN matching is on.
		if p.SSLServerCertDN != "" && p.SSLServerDNMatch {
			fmt.Fprintf(&b, "(SSL_SERVER_CERT_DN=%s)", quoteValue(p.SSLServerCertDN))
		}
		if p.WalletLocation != "" {
			fmt.Fprintf(&b, "(MY_WALLET_DIRECTORY=%s)", quoteValue(p.WalletLocation))
		}
		b.WriteString(")")
	}

	b.WriteString(")")
	return b.String(), nil
}

func (cp *ConnectParams) isSet(keyword string) bool {
	return cp.src[keyword] != sourceDefault
}

func writeAddress(b *strings.Builder, addr Address) {
	fmt.Fprintf(b, "(ADDRESS=(PROTOCOL=%s)(HOST=%s)(PORT=%d)", addr.Protocol, quoteValue(addr.Host), addr.Port)
	if addr.HTTPSProxy != "" {
		fmt.Fprintf(b, "(HTTPS_PROXY=%s)", quoteValue(addr.HTTPSProxy))
		if addr.HTTPSProxyPort != 0 {
			fmt.Fprintf(b, "(HTTPS_PROXY_PORT=%d)", addr.HTTPSProxyPort)
		}
	}
	b.WriteString(")")
}

// quoteValue wraps values that would confuse the descriptor tokenizer
// (parens, '=', whitespace) in double quotes.
func quoteValue(s string) string {
	if strings.ContainsAny(s, "()= \t") {
		return `"` + s + `"`
	}
	return s
}

func upperBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// formatSeconds renders a timeout the way descriptors expect: whole seconds
// as a bare integer, fractional values in milliseconds.
func formatSeconds(secs float64) string {
	if secs == float64(int(secs)) {
		return strconv.Itoa(int(secs))
	}
	return strconv.Itoa(int(secs*1000)) + "ms"
}
