package connstring

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// keywordDef binds a keyword name to the code that coerces and stores its
// value. The same table serves explicit Set calls, descriptor keys and Easy
// Connect query parameters, so values may arrive as native Go types or as
// raw descriptor text.
type keywordDef struct {
	name string
	set  func(*Params, any) error
}

// keywords maps every recognized keyword (lowercase) to its definition.
var keywords = map[string]*keywordDef{}

// keywordAliases maps alternate spellings (descriptor key names, Easy
// Connect query parameter names) onto canonical keywords.
var keywordAliases = map[string]string{
	"connect_timeout":           "tcp_connect_timeout",
	"transport_connect_timeout": "tcp_connect_timeout",
	"my_wallet_directory":       "wallet_location",
	"pool_connection_class":     "cclass",
	"pool_purity":               "purity",
	"server":                    "server_type",
}

// descriptorKeys maps full-descriptor keys (uppercase) onto keywords. Keys
// absent from this table are ignored by the descriptor walk for forward
// compatibility with descriptor keys this parameter set does not model.
var descriptorKeys = map[string]string{
	"HOST":                      "host",
	"PORT":                      "port",
	"PROTOCOL":                  "protocol",
	"SERVICE_NAME":              "service_name",
	"SID":                       "sid",
	"SERVER":                    "server_type",
	"SERVER_TYPE":               "server_type",
	"SDU":                       "sdu",
	"RETRY_COUNT":               "retry_count",
	"RETRY_DELAY":               "retry_delay",
	"CONNECT_TIMEOUT":           "tcp_connect_timeout",
	"TRANSPORT_CONNECT_TIMEOUT": "tcp_connect_timeout",
	"EXPIRE_TIME":               "expire_time",
	"SSL_SERVER_DN_MATCH":       "ssl_server_dn_match",
	"SSL_SERVER_CERT_DN":        "ssl_server_cert_dn",
	"MY_WALLET_DIRECTORY":       "wallet_location",
	"POOL_CONNECTION_CLASS":     "cclass",
	"POOL_PURITY":               "purity",
	"HTTPS_PROXY":               "https_proxy",
	"HTTPS_PROXY_PORT":          "https_proxy_port",
}

func register(name string, set func(*Params, any) error) {
	keywords[name] = &keywordDef{name: name, set: set}
}

func lookupKeyword(name string) *keywordDef {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := keywordAliases[key]; ok {
		key = canonical
	}
	return keywords[key]
}

func stringKeyword(name string, field func(*Params) *string) {
	register(name, func(p *Params, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		*field(p) = s
		return nil
	})
}

func intKeyword(name string, field func(*Params) *int) {
	register(name, func(p *Params, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		*field(p) = n
		return nil
	})
}

func boolKeyword(name string, field func(*Params) *bool) {
	register(name, func(p *Params, v any) error {
		b, err := asBool(v)
		if err != nil {
			return err
		}
		*field(p) = b
		return nil
	})
}

func init() {
	// user may carry a bracketed proxy user: "user[proxy]" connects as user
	// through the proxy session.
	register("user", func(p *Params, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		user, proxy := splitProxyUser(s)
		p.User = user
		if proxy != "" {
			p.ProxyUser = proxy
		}
		return nil
	})
	stringKeyword("proxy_user", func(p *Params) *string { return &p.ProxyUser })
	stringKeyword("password", func(p *Params) *string { return &p.Password })
	stringKeyword("new_password", func(p *Params) *string { return &p.NewPassword })
	stringKeyword("wallet_password", func(p *Params) *string { return &p.WalletPassword })
	stringKeyword("access_token", func(p *Params) *string { return &p.AccessToken })
	boolKeyword("external_auth", func(p *Params) *bool { return &p.ExternalAuth })

	stringKeyword("host", func(p *Params) *string { return &p.Host })
	register("port", func(p *Params, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		if n < 1 || n > 65535 {
			return fmt.Errorf("port %d out of range", n)
		}
		p.Port = n
		return nil
	})
	register("protocol", func(p *Params, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		proto, err := parseProtocol(s)
		if err != nil {
			return err
		}
		p.Protocol = proto
		return nil
	})
	stringKeyword("https_proxy", func(p *Params) *string { return &p.HTTPSProxy })
	intKeyword("https_proxy_port", func(p *Params) *int { return &p.HTTPSProxyPort })
	intKeyword("retry_count", func(p *Params) *int { return &p.RetryCount })
	intKeyword("retry_delay", func(p *Params) *int { return &p.RetryDelay })
	register("tcp_connect_timeout", func(p *Params, v any) error {
		secs, err := asSeconds(v)
		if err != nil {
			return err
		}
		p.TCPConnectTimeout = secs
		return nil
	})
	register("sdu", func(p *Params, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		// Session data unit is negotiated within fixed transport bounds.
		if n < 512 {
			n = 512
		} else if n > 2097152 {
			n = 2097152
		}
		p.SDU = n
		return nil
	})

	stringKeyword("service_name", func(p *Params) *string { return &p.ServiceName })
	stringKeyword("sid", func(p *Params) *string { return &p.SID })
	register("server_type", func(p *Params, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		st, err := parseServerType(s)
		if err != nil {
			return err
		}
		p.ServerType = st
		return nil
	})
	stringKeyword("cclass", func(p *Params) *string { return &p.CClass })
	register("purity", func(p *Params, v any) error {
		switch val := v.(type) {
		case Purity:
			p.Purity = val
			return nil
		case int:
			if val < int(PurityDefault) || val > int(PuritySelf) {
				return fmt.Errorf("purity %d out of range", val)
			}
			p.Purity = Purity(val)
			return nil
		case string:
			purity, err := parsePurity(val)
			if err != nil {
				return err
			}
			p.Purity = purity
			return nil
		}
		return fmt.Errorf("cannot use %T as purity", v)
	})
	stringKeyword("edition", func(p *Params) *string { return &p.Edition })
	register("sharding_key", func(p *Params, v any) error {
		key, err := asShardingKey(v)
		if err != nil {
			return err
		}
		p.ShardingKey = key
		return nil
	})
	register("super_sharding_key", func(p *Params, v any) error {
		key, err := asShardingKey(v)
		if err != nil {
			return err
		}
		p.SuperShardingKey = key
		return nil
	})

	boolKeyword("events", func(p *Params) *bool { return &p.Events })
	register("mode", func(p *Params, v any) error {
		switch val := v.(type) {
		case AuthMode:
			p.Mode = val
			return nil
		case int:
			p.Mode = AuthMode(val)
			return nil
		case string:
			mode, err := parseAuthMode(val)
			if err != nil {
				return err
			}
			p.Mode = mode
			return nil
		}
		return fmt.Errorf("cannot use %T as authorization mode", v)
	})
	intKeyword("stmtcachesize", func(p *Params) *int { return &p.StmtCacheSize })
	stringKeyword("tag", func(p *Params) *string { return &p.Tag })
	boolKeyword("matchanytag", func(p *Params) *bool { return &p.MatchAnyTag })
	intKeyword("expire_time", func(p *Params) *int { return &p.ExpireTime })
	boolKeyword("disable_oob", func(p *Params) *bool { return &p.DisableOOB })
	register("app_context", func(p *Params, v any) error {
		entries, ok := v.([]AppContextEntry)
		if !ok {
			return fmt.Errorf("cannot use %T as app_context (want []AppContextEntry)", v)
		}
		p.AppContext = append([]AppContextEntry(nil), entries...)
		return nil
	})
	stringKeyword("config_dir", func(p *Params) *string { return &p.ConfigDir })
	stringKeyword("debug_jdwp", func(p *Params) *string { return &p.DebugJDWP })
	stringKeyword("connection_id_prefix", func(p *Params) *string { return &p.ConnectionIDPrefix })

	boolKeyword("ssl_server_dn_match", func(p *Params) *bool { return &p.SSLServerDNMatch })
	stringKeyword("ssl_server_cert_dn", func(p *Params) *string { return &p.SSLServerCertDN })
	stringKeyword("wallet_location", func(p *Params) *string { return &p.WalletLocation })
	register("ssl_context", func(p *Params, v any) error {
		cfg, ok := v.(*tls.Config)
		if !ok {
			return fmt.Errorf("cannot use %T as ssl_context (want *tls.Config)", v)
		}
		p.SSLContext = cfg
		return nil
	})
}

// splitProxyUser splits "user[proxy]" into its two names. A user without a
// bracket suffix comes back unchanged with an empty proxy.
func splitProxyUser(s string) (user, proxy string) {
	s = strings.TrimSpace(s)
	if open := strings.IndexByte(s, '['); open > 0 && strings.HasSuffix(s, "]") {
		return s[:open], s[open+1 : len(s)-1]
	}
	return s, ""
}

// ---------------------------------------------------------------------------
// Value coercion
// ---------------------------------------------------------------------------

func asString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot use %T as string", v)
}

func asInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("cannot use %v as integer", val)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", val)
		}
		return n, nil
	}
	return 0, fmt.Errorf("cannot use %T as integer", v)
}

func asBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return false, fmt.Errorf("invalid boolean %q", val)
	}
	return false, fmt.Errorf("cannot use %T as boolean", v)
}

// asSeconds accepts numbers (seconds) or descriptor text with an optional
// unit suffix: "5", "500 ms", "5sec", "1min".
func asSeconds(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case time.Duration:
		return val.Seconds(), nil
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		scale := 1.0
		for _, unit := range []struct {
			suffix string
			scale  float64
		}{{"ms", 0.001}, {"sec", 1}, {"min", 60}, {"s", 1}} {
			if strings.HasSuffix(s, unit.suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
				scale = unit.scale
				break
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", val)
		}
		return f * scale, nil
	}
	return 0, fmt.Errorf("cannot use %T as duration", v)
}

// asShardingKey validates that every element of a sharding key is one of the
// scalar kinds the wire protocol can encode.
func asShardingKey(v any) ([]any, error) {
	values, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("cannot use %T as sharding key (want []any)", v)
	}
	for i, elem := range values {
		switch elem.(type) {
		case string, int, int64, float64, []byte, time.Time:
		default:
			return nil, fmt.Errorf("sharding key element %d has unsupported type %T", i, elem)
		}
	}
	return append([]any(nil), values...), nil
}
