// Package connstring resolves Oracle connect strings into a validated,
// strongly typed connection parameter set.
//
// Three syntaxes are accepted. Easy Connect:
//
//	tcps://dbhost.example.com:1522/orclpdb?connect_timeout=5
//
// the full connect descriptor form:
//
//	(DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=dbhost)(PORT=1521))
//	  (CONNECT_DATA=(SERVICE_NAME=orclpdb)))
//
// and tnsnames.ora aliases, resolved against the directory named by the
// config_dir parameter or the TNS_ADMIN / ORACLE_HOME environment variables.
// Credential DSNs ("user/password@connect_string") are split by ParseDSN.
//
// Values merge from three sources under a fixed precedence: library defaults
// fill unset fields, explicit Set calls override defaults, and a parsed
// connect string overrides everything, including Set calls made afterward,
// for the keywords the connect string populated. Mutually exclusive
// parameters (edition and cclass) are only rejected when the set is consumed
// via Snapshot or Validate, so a set may pass through conflicting states
// while it is being built.
//
// A ConnectParams is owned by a single goroutine; the Params snapshot handed
// to the transport layer is an independent copy and safe to read concurrently.
package connstring
