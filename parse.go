package connstring

import (
	"errors"
	"strconv"
	"strings"

	"github.com/orawire/connstring/internal/descriptor"
	"github.com/orawire/connstring/internal/tnsnames"
)

// ParseDSN splits a "user/password@connect_string" DSN into its three
// components without interpreting them. Missing components come back as "";
// a present-but-empty component ("scott/") is indistinguishable from an
// absent one by design.
func ParseDSN(dsn string) (user, password, connectString string) {
	return descriptor.SplitDSN(dsn)
}

// ParseDSN applies a credential-carrying DSN: the user and password are
// applied as parsed values, an "AS SYSDBA"/"AS SYSOPER" suffix folds into the
// authorization mode, and the remaining connect string goes through Parse.
func (cp *ConnectParams) ParseDSN(dsn string) error {
	user, password, connectString := descriptor.SplitDSN(dsn)

	upper := strings.ToUpper(connectString)
	for suffix, mode := range map[string]AuthMode{
		" AS SYSDBA":  AuthModeSysDBA,
		" AS SYSOPER": AuthModeSysOper,
	} {
		if strings.HasSuffix(upper, suffix) {
			connectString = strings.TrimSpace(connectString[:len(connectString)-len(suffix)])
			if err := cp.apply("mode", mode, sourceParsed); err != nil {
				return err
			}
			break
		}
	}

	if user != "" {
		if err := cp.apply("user", user, sourceParsed); err != nil {
			return err
		}
	}
	if password != "" {
		if err := cp.apply("password", password, sourceParsed); err != nil {
			return err
		}
	}
	return cp.Parse(connectString)
}

// Parse resolves and applies one connect string. An alias-shaped input is
// first resolved against tnsnames.ora; resolution is single-level, so the
// mapped text is parsed literally even when it looks like another alias.
// An empty connect string is legal and leaves every parameter as it was.
// Parsed values win over both earlier and later Set calls for the keywords
// the connect string populates.
func (cp *ConnectParams) Parse(connectString string) error {
	text := strings.TrimSpace(connectString)
	if text == "" {
		return nil
	}

	switch descriptor.Classify(text) {
	case descriptor.KindDescriptor:
		cp.log().Debug("parsing full connect descriptor")
		return cp.parseFullDescriptor(text)
	case descriptor.KindEasyConnect:
		cp.log().Debug("parsing easy connect string")
		return cp.parseEasyConnect(text)
	default:
		return cp.parseBareName(text)
	}
}

// parseBareName handles input with no recognizable structure: a tnsnames
// alias or a bare hostname. When no alias file exists anywhere the name is
// taken as a literal host; when alias files exist but none define the name,
// the lookup failure is surfaced rather than silently becoming a DNS name.
func (cp *ConnectParams) parseBareName(name string) error {
	resolver := &tnsnames.Resolver{Dirs: cp.configDirs(), Logger: cp.logger}
	text, err := resolver.Lookup(name)
	switch {
	case err == nil:
		// Single-level resolution: parse the mapped text literally. If it is
		// itself alias-shaped it becomes a bare host, never another lookup.
		text = strings.TrimSpace(text)
		switch descriptor.Classify(text) {
		case descriptor.KindDescriptor:
			return cp.parseFullDescriptor(text)
		case descriptor.KindEasyConnect:
			return cp.parseEasyConnect(text)
		default:
			return cp.apply("host", text, sourceParsed)
		}
	case errors.Is(err, tnsnames.ErrNoConfigFile):
		cp.log().Debug("no alias file found, using bare host", "host", name)
		return cp.apply("host", name, sourceParsed)
	default:
		return err
	}
}

// configDirs returns the alias file search path: an explicitly configured
// config_dir wins outright; otherwise the process-wide default directories.
func (cp *ConnectParams) configDirs() []string {
	if cp.p.ConfigDir != "" {
		return []string{cp.p.ConfigDir}
	}
	return loadProcessDefaults().ConfigDirs
}

// parseEasyConnect applies one Easy Connect string.
func (cp *ConnectParams) parseEasyConnect(text string) error {
	ez, err := descriptor.ParseEasyConnect(text)
	if err != nil {
		return err
	}

	if ez.Protocol != "" {
		if err := cp.apply("protocol", ez.Protocol, sourceParsed); err != nil {
			return err
		}
	}

	if len(ez.Addresses) > 0 {
		addrs := make([]Address, 0, len(ez.Addresses))
		for _, seg := range ez.Addresses {
			addr := Address{Protocol: cp.p.Protocol, Host: seg.Host, Port: cp.p.Port}
			if seg.Port != "" {
				port, err := parseAddrPort(seg.Port)
				if err != nil {
					return err
				}
				addr.Port = port
			}
			addrs = append(addrs, addr)
		}
		cp.p.Addresses = addrs

		first := ez.Addresses[0]
		if err := cp.apply("host", first.Host, sourceParsed); err != nil {
			return err
		}
		if first.Port != "" {
			if err := cp.apply("port", first.Port, sourceParsed); err != nil {
				return err
			}
		}
	}

	if ez.ServiceName != "" {
		if err := cp.apply("service_name", ez.ServiceName, sourceParsed); err != nil {
			return err
		}
	}
	if ez.ServerType != "" {
		if err := cp.apply("server_type", ez.ServerType, sourceParsed); err != nil {
			return err
		}
	}

	for _, param := range ez.Params {
		if lookupKeyword(param.Key) == nil {
			cp.log().Debug("ignoring unknown query parameter", "name", param.Key)
			continue
		}
		if err := cp.apply(param.Key, param.Value, sourceParsed); err != nil {
			return err
		}
	}
	return nil
}

// parseFullDescriptor applies nested (KEY=value) descriptor text.
func (cp *ConnectParams) parseFullDescriptor(text string) error {
	nodes, err := descriptor.ParseDescriptor(text)
	if err != nil {
		return err
	}

	var (
		assignments []descriptor.Assignment
		addrs       []Address
	)
	for _, node := range nodes {
		if err := walkDescriptor(node, &assignments, &addrs); err != nil {
			return err
		}
	}

	for _, a := range assignments {
		if err := cp.apply(a.Key, a.Value, sourceParsed); err != nil {
			return err
		}
	}

	if len(addrs) > 0 {
		cp.p.Addresses = addrs
		first := addrs[0]
		if err := cp.apply("protocol", string(first.Protocol), sourceParsed); err != nil {
			return err
		}
		if err := cp.apply("host", first.Host, sourceParsed); err != nil {
			return err
		}
		if err := cp.apply("port", first.Port, sourceParsed); err != nil {
			return err
		}
		if first.HTTPSProxy != "" {
			if err := cp.apply("https_proxy", first.HTTPSProxy, sourceParsed); err != nil {
				return err
			}
		}
		if first.HTTPSProxyPort != 0 {
			if err := cp.apply("https_proxy_port", first.HTTPSProxyPort, sourceParsed); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkDescriptor collects recognized leaf keys and ADDRESS groups from a
// descriptor tree. Unrecognized keys are skipped: descriptors routinely carry
// keys this parameter set does not model, and they must not be fatal. Within
// a scope, repeated keys override earlier ones, which falls out of applying
// assignments in walk order.
func walkDescriptor(node *descriptor.Node, assignments *[]descriptor.Assignment, addrs *[]Address) error {
	if node.Key == "ADDRESS" {
		addr, err := addressFromNode(node)
		if err != nil {
			return err
		}
		*addrs = append(*addrs, addr)
		return nil
	}
	if node.IsLeaf() {
		if keyword, ok := descriptorKeys[node.Key]; ok {
			*assignments = append(*assignments, descriptor.Assignment{Key: keyword, Value: node.Value})
		}
		return nil
	}
	for _, child := range node.Children {
		if err := walkDescriptor(child, assignments, addrs); err != nil {
			return err
		}
	}
	return nil
}

// parseAddrPort validates an address candidate's port the same way the port
// keyword does, so non-primary failover candidates get the same range check.
func parseAddrPort(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &SyntaxError{Token: s, Msg: "port must be numeric"}
	}
	if n < 1 || n > 65535 {
		return 0, &SyntaxError{Token: s, Msg: "port out of range"}
	}
	return n, nil
}

// addressFromNode builds one address candidate from an (ADDRESS=...) group.
func addressFromNode(node *descriptor.Node) (Address, error) {
	addr := Address{Protocol: DefaultProtocol, Port: DefaultPort}
	for _, c := range node.Children {
		if !c.IsLeaf() {
			continue
		}
		switch c.Key {
		case "PROTOCOL":
			proto, err := parseProtocol(c.Value)
			if err != nil {
				return addr, err
			}
			addr.Protocol = proto
		case "HOST":
			addr.Host = c.Value
		case "PORT":
			port, err := parseAddrPort(c.Value)
			if err != nil {
				return addr, err
			}
			addr.Port = port
		case "HTTPS_PROXY":
			addr.HTTPSProxy = c.Value
		case "HTTPS_PROXY_PORT":
			port, err := strconv.Atoi(c.Value)
			if err != nil {
				return addr, &SyntaxError{Token: c.Value, Msg: "proxy port must be numeric"}
			}
			addr.HTTPSProxyPort = port
		}
	}
	return addr, nil
}
