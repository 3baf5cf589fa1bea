package descriptor

import (
	"net/url"
	"strings"
)

// Assignment is a single key=value pair extracted from a connect string.
// Keys are lowercased; values are URL-decoded where the grammar calls for it.
type Assignment struct {
	Key   string
	Value string
}

// EZAddress is one host candidate from an Easy Connect string. Port is kept
// as text ("" when absent); the caller applies the default and range check.
type EZAddress struct {
	Host string
	Port string
}

// EasyConnect is the parsed form of
//
//	[protocol://]host[:port][,host2[:port2]...][/service_name[:server_type]][?key=value&...]
//
// Every comma-separated address segment is preserved in order; failover
// composition across the candidates belongs to the transport layer.
type EasyConnect struct {
	Protocol    string
	Addresses   []EZAddress
	ServiceName string
	ServerType  string
	Params      []Assignment
}

// ParseEasyConnect parses Easy Connect syntax. Hosts may be bracketed IPv6
// literals; trailing query parameters map onto connection keywords and are
// URL-decoded. Structural problems (unterminated bracket, non-numeric port,
// bad escape) fail with *SyntaxError.
func ParseEasyConnect(input string) (*EasyConnect, error) {
	ez := &EasyConnect{}
	rest := input
	base := 0 // offset of rest within input, for error positions

	// Query parameters.
	if qi := strings.IndexByte(rest, '?'); qi >= 0 {
		params, err := parseQuery(rest[qi+1:], base+qi+1)
		if err != nil {
			return nil, err
		}
		ez.Params = params
		rest = rest[:qi]
	}

	// Protocol prefix.
	if pi := strings.Index(rest, "://"); pi >= 0 {
		ez.Protocol = strings.ToLower(strings.TrimSpace(rest[:pi]))
		if ez.Protocol == "" {
			return nil, syntaxErrf(base, "://", "empty protocol")
		}
		rest = rest[pi+3:]
		base += pi + 3
	}

	// Service name portion after the first '/'. Bracketed IPv6 literals and
	// port numbers cannot contain '/', so the first slash always starts the
	// service part.
	if si := strings.IndexByte(rest, '/'); si >= 0 {
		svc := strings.TrimSpace(rest[si+1:])
		if ci := strings.IndexByte(svc, ':'); ci >= 0 {
			ez.ServerType = strings.ToLower(strings.TrimSpace(svc[ci+1:]))
			svc = strings.TrimSpace(svc[:ci])
		}
		ez.ServiceName = svc
		rest = rest[:si]
	}

	// Comma-separated address candidates.
	hostPart := strings.TrimSpace(rest)
	if hostPart != "" {
		offset := base
		for _, seg := range strings.Split(hostPart, ",") {
			addr, err := parseAddressSegment(seg, offset)
			if err != nil {
				return nil, err
			}
			if addr.Host != "" || addr.Port != "" {
				ez.Addresses = append(ez.Addresses, addr)
			}
			offset += len(seg) + 1
		}
	}

	return ez, nil
}

// parseAddressSegment parses one "host", "host:port", "[v6]" or "[v6]:port"
// segment.
func parseAddressSegment(seg string, pos int) (EZAddress, error) {
	s := strings.TrimSpace(seg)
	if s == "" {
		return EZAddress{}, nil
	}

	var addr EZAddress
	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return addr, syntaxErrf(pos, s, "unterminated IPv6 bracket")
		}
		addr.Host = s[1:end]
		s = s[end+1:]
		if s == "" {
			return addr, nil
		}
		if s[0] != ':' {
			return addr, syntaxErrf(pos, s, "unexpected text after IPv6 address")
		}
		addr.Port = s[1:]
	} else if ci := strings.IndexByte(s, ':'); ci >= 0 {
		addr.Host = strings.TrimSpace(s[:ci])
		addr.Port = strings.TrimSpace(s[ci+1:])
	} else {
		addr.Host = s
	}

	if addr.Port != "" && !allDigits(addr.Port) {
		return addr, syntaxErrf(pos, addr.Port, "port must be numeric")
	}
	return addr, nil
}

// parseQuery splits "key=value&key2=value2" into URL-decoded assignments,
// keys lowercased, order preserved.
func parseQuery(q string, pos int) ([]Assignment, error) {
	var params []Assignment
	offset := pos
	for _, pair := range strings.Split(q, "&") {
		if strings.TrimSpace(pair) == "" {
			offset += len(pair) + 1
			continue
		}
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			return nil, syntaxErrf(offset, pair, "query parameter without '='")
		}
		key, err := url.QueryUnescape(strings.TrimSpace(pair[:eq]))
		if err != nil {
			return nil, syntaxErrf(offset, pair[:eq], "bad escape in parameter name")
		}
		value, err := url.QueryUnescape(strings.TrimSpace(pair[eq+1:]))
		if err != nil {
			return nil, syntaxErrf(offset+eq+1, pair[eq+1:], "bad escape in parameter value")
		}
		params = append(params, Assignment{Key: strings.ToLower(key), Value: value})
		offset += len(pair) + 1
	}
	return params, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
