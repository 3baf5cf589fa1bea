package connstring

import (
	"crypto/tls"
	"fmt"
	"strings"
)

// Protocol is the transport protocol of an address.
type Protocol string

const (
	ProtocolTCP  Protocol = "tcp"
	ProtocolTCPS Protocol = "tcps"
)

func parseProtocol(s string) (Protocol, error) {
	switch Protocol(strings.ToLower(s)) {
	case ProtocolTCP:
		return ProtocolTCP, nil
	case ProtocolTCPS:
		return ProtocolTCPS, nil
	}
	return "", fmt.Errorf("unsupported protocol %q (want tcp or tcps)", s)
}

// ServerType selects the server process model requested in CONNECT_DATA.
type ServerType string

const (
	ServerDefault   ServerType = ""
	ServerDedicated ServerType = "dedicated"
	ServerShared    ServerType = "shared"
	ServerPooled    ServerType = "pooled"
)

func parseServerType(s string) (ServerType, error) {
	switch ServerType(strings.ToLower(s)) {
	case ServerDefault, ServerDedicated, ServerShared, ServerPooled:
		return ServerType(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unsupported server type %q (want dedicated, shared or pooled)", s)
}

// Purity is the DRCP session purity. The default means "new" for standalone
// connections and "self" for pooled ones; that distinction is applied by the
// consumer, not here.
type Purity int

const (
	PurityDefault Purity = 0
	PurityNew     Purity = 1
	PuritySelf    Purity = 2
)

func (p Purity) String() string {
	switch p {
	case PurityNew:
		return "new"
	case PuritySelf:
		return "self"
	default:
		return "default"
	}
}

func parsePurity(s string) (Purity, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return PurityDefault, nil
	case "new":
		return PurityNew, nil
	case "self":
		return PuritySelf, nil
	}
	return 0, fmt.Errorf("unsupported purity %q (want new, self or default)", s)
}

// AuthMode is the authorization mode bitmask used when opening the session.
// The values match the wire-level authorization modes.
type AuthMode uint32

const (
	AuthModeDefault AuthMode = 0x00000000
	AuthModePrelim  AuthMode = 0x00000008
	AuthModeSysASM  AuthMode = 0x00008000
	AuthModeSysBkp  AuthMode = 0x00020000
	AuthModeSysDBA  AuthMode = 0x00000002
	AuthModeSysDgd  AuthMode = 0x00040000
	AuthModeSysKmt  AuthMode = 0x00080000
	AuthModeSysOper AuthMode = 0x00000004
	AuthModeSysRac  AuthMode = 0x00100000
)

func parseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AuthModeDefault, nil
	case "sysdba":
		return AuthModeSysDBA, nil
	case "sysoper":
		return AuthModeSysOper, nil
	case "sysasm":
		return AuthModeSysASM, nil
	case "sysbkp", "sysbackup":
		return AuthModeSysBkp, nil
	case "sysdgd", "sysdg":
		return AuthModeSysDgd, nil
	case "syskmt", "syskm":
		return AuthModeSysKmt, nil
	case "sysrac":
		return AuthModeSysRac, nil
	case "prelim":
		return AuthModePrelim, nil
	}
	return 0, fmt.Errorf("unsupported authorization mode %q", s)
}

// Address is one network target candidate. A connect string may carry several
// (comma-separated Easy Connect segments or multiple ADDRESS groups); the
// transport layer decides how to iterate them.
type Address struct {
	Protocol       Protocol
	Host           string
	Port           int
	HTTPSProxy     string
	HTTPSProxyPort int
}

// AppContextEntry is one (namespace, name, value) application context triple
// set on the session after connecting.
type AppContextEntry struct {
	Namespace string
	Name      string
	Value     string
}

// Params is the fully resolved, read-only connection parameter snapshot
// handed to the transport layer. Obtain one from ConnectParams.Snapshot;
// treat it as immutable for the duration of a connection attempt.
type Params struct {
	// Identity / credentials
	User           string
	ProxyUser      string
	Password       string
	NewPassword    string
	WalletPassword string
	AccessToken    string
	ExternalAuth   bool

	// Network target
	Host              string
	Port              int
	Protocol          Protocol
	HTTPSProxy        string
	HTTPSProxyPort    int
	RetryCount        int
	RetryDelay        int // seconds between connect retries
	TCPConnectTimeout float64
	SDU               int
	Addresses         []Address

	// Database target
	ServiceName      string
	SID              string
	ServerType       ServerType
	CClass           string
	Purity           Purity
	Edition          string
	ShardingKey      []any
	SuperShardingKey []any

	// Session / pool behavior
	Events             bool
	Mode               AuthMode
	StmtCacheSize      int
	Tag                string
	MatchAnyTag        bool
	ExpireTime         int // keepalive interval in minutes, 0 disables
	DisableOOB         bool
	AppContext         []AppContextEntry
	ConfigDir          string
	DebugJDWP          string
	ConnectionIDPrefix string
	ConnectionID       string // generated at snapshot time

	// TLS
	SSLServerDNMatch bool
	SSLServerCertDN  string
	WalletLocation   string
	SSLContext       *tls.Config // caller-supplied, never constructed here
}

// clone deep-copies the snapshot. SSLContext is an opaque caller-owned handle
// and is shared, not duplicated.
func (p Params) clone() Params {
	out := p
	if p.Addresses != nil {
		out.Addresses = append([]Address(nil), p.Addresses...)
	}
	if p.AppContext != nil {
		out.AppContext = append([]AppContextEntry(nil), p.AppContext...)
	}
	if p.ShardingKey != nil {
		out.ShardingKey = append([]any(nil), p.ShardingKey...)
	}
	if p.SuperShardingKey != nil {
		out.SuperShardingKey = append([]any(nil), p.SuperShardingKey...)
	}
	return out
}
