package connstring

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// source records where a keyword's current value came from. The zero value
// (a keyword absent from the source map) means the library default.
type source uint8

const (
	sourceDefault source = iota
	sourceExplicit
	sourceParsed
)

// ConnectParams resolves and aggregates connection parameters. Values arrive
// from three places (library defaults, explicit Set calls, and parsed
// connect strings) and merge under a one-directional precedence ratchet:
// a parsed descriptor overrides anything, while an explicit Set never
// overrides a keyword a descriptor already populated (it may still set
// keywords the descriptor left untouched).
//
// A ConnectParams is not safe for concurrent mutation; callers sharing one
// across goroutines must serialize writes themselves.
type ConnectParams struct {
	p      Params
	src    map[string]source
	logger *slog.Logger
}

// NewConnectParams returns a parameter set with every field at its library
// default, seeded from the process environment (TNS_ADMIN, ORA_DEBUG_JDWP).
func NewConnectParams() *ConnectParams {
	return &ConnectParams{
		p:   defaultParams(),
		src: make(map[string]source),
	}
}

// SetLogger routes the resolver's debug logging. Nil means slog.Default().
func (cp *ConnectParams) SetLogger(logger *slog.Logger) { cp.logger = logger }

func (cp *ConnectParams) log() *slog.Logger {
	if cp.logger != nil {
		return cp.logger
	}
	return slog.Default()
}

// Set assigns one keyword explicitly. Keyword names are case-insensitive and
// match the Easy Connect query parameter names (host, port, service_name,
// tcp_connect_timeout, ...). Setting a keyword that a previously parsed
// connect string populated is a silent no-op under the precedence ratchet.
// An unrecognized keyword or an uncoercible value is an error.
func (cp *ConnectParams) Set(keyword string, value any) error {
	return cp.apply(keyword, value, sourceExplicit)
}

// apply routes one assignment through the keyword table and the provenance
// ratchet.
func (cp *ConnectParams) apply(keyword string, value any, src source) error {
	def := lookupKeyword(keyword)
	if def == nil {
		return fmt.Errorf("unknown connection parameter %q", keyword)
	}
	if src == sourceExplicit && cp.src[def.name] == sourceParsed {
		cp.log().Debug("keeping parsed value", "keyword", def.name)
		return nil
	}
	if err := def.set(&cp.p, value); err != nil {
		return fmt.Errorf("parameter %q: %w", def.name, err)
	}
	cp.src[def.name] = src
	return nil
}

// Copy returns a deep, fully independent duplicate, provenance included.
func (cp *ConnectParams) Copy() *ConnectParams {
	src := make(map[string]source, len(cp.src))
	for k, v := range cp.src {
		src[k] = v
	}
	return &ConnectParams{p: cp.p.clone(), src: src, logger: cp.logger}
}

// Validate checks constraints that only hold for a consumable parameter set.
// It runs lazily, here and in Snapshot but never in Set or Parse, because a
// set under construction may transiently violate them.
func (cp *ConnectParams) Validate() error {
	if cp.p.Edition != "" && cp.p.CClass != "" {
		return &ValidationError{Field1: "edition", Field2: "cclass"}
	}
	return nil
}

// Snapshot validates the parameter set and freezes it into an independent
// Params value for the transport layer. The connection id is generated here:
// the configured prefix plus a random suffix, unique per snapshot. When no
// explicit address list was parsed, a single candidate is synthesized from
// Host/Port/Protocol.
func (cp *ConnectParams) Snapshot() (Params, error) {
	if err := cp.Validate(); err != nil {
		return Params{}, err
	}
	out := cp.p.clone()
	out.ConnectionID = out.ConnectionIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(out.Addresses) == 0 && out.Host != "" {
		out.Addresses = []Address{{
			Protocol:       out.Protocol,
			Host:           out.Host,
			Port:           out.Port,
			HTTPSProxy:     out.HTTPSProxy,
			HTTPSProxyPort: out.HTTPSProxyPort,
		}}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (cp *ConnectParams) User() string               { return cp.p.User }
func (cp *ConnectParams) ProxyUser() string          { return cp.p.ProxyUser }
func (cp *ConnectParams) Host() string               { return cp.p.Host }
func (cp *ConnectParams) Port() int                  { return cp.p.Port }
func (cp *ConnectParams) Protocol() Protocol         { return cp.p.Protocol }
func (cp *ConnectParams) ServiceName() string        { return cp.p.ServiceName }
func (cp *ConnectParams) SID() string                { return cp.p.SID }
func (cp *ConnectParams) ServerType() ServerType     { return cp.p.ServerType }
func (cp *ConnectParams) Mode() AuthMode             { return cp.p.Mode }
func (cp *ConnectParams) Edition() string            { return cp.p.Edition }
func (cp *ConnectParams) CClass() string             { return cp.p.CClass }
func (cp *ConnectParams) Purity() Purity             { return cp.p.Purity }
func (cp *ConnectParams) ConfigDir() string          { return cp.p.ConfigDir }
func (cp *ConnectParams) WalletLocation() string     { return cp.p.WalletLocation }
func (cp *ConnectParams) SSLServerDNMatch() bool     { return cp.p.SSLServerDNMatch }
func (cp *ConnectParams) TCPConnectTimeout() float64 { return cp.p.TCPConnectTimeout }
func (cp *ConnectParams) StmtCacheSize() int         { return cp.p.StmtCacheSize }
func (cp *ConnectParams) Addresses() []Address {
	return append([]Address(nil), cp.p.Addresses...)
}
