package connstring

import (
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Library defaults for every parameter that has one.
const (
	DefaultPort              = 1521
	DefaultProtocol          = ProtocolTCP
	DefaultTCPConnectTimeout = 60.0 // seconds
	DefaultSDU               = 8192
	DefaultStmtCacheSize     = 20
)

// processDefaults holds the environment-derived defaults read once per
// process. They seed every new parameter set; they are not re-read per parse.
type processDefaults struct {
	ConfigDirs []string // ordered search path for tnsnames.ora
	DebugJDWP  string
}

var (
	defaultsOnce sync.Once
	procDefaults processDefaults
)

// loadProcessDefaults reads TNS_ADMIN, ORACLE_HOME and ORA_DEBUG_JDWP through
// viper, mirroring how the CLI binds its environment.
func loadProcessDefaults() processDefaults {
	defaultsOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()
		_ = v.BindEnv("config_dir", "CONNSTR_CONFIG_DIR", "TNS_ADMIN")
		_ = v.BindEnv("oracle_home", "ORACLE_HOME")
		_ = v.BindEnv("debug_jdwp", "ORA_DEBUG_JDWP")

		var dirs []string
		if dir := v.GetString("config_dir"); dir != "" {
			dirs = append(dirs, dir)
		}
		if home := v.GetString("oracle_home"); home != "" {
			dirs = append(dirs, filepath.Join(home, "network", "admin"))
		}
		procDefaults = processDefaults{
			ConfigDirs: dirs,
			DebugJDWP:  v.GetString("debug_jdwp"),
		}
	})
	return procDefaults
}

// defaultParams returns a snapshot with every field at its library default,
// seeded with the process-wide environment defaults.
func defaultParams() Params {
	env := loadProcessDefaults()
	p := Params{
		Port:              DefaultPort,
		Protocol:          DefaultProtocol,
		TCPConnectTimeout: DefaultTCPConnectTimeout,
		SDU:               DefaultSDU,
		StmtCacheSize:     DefaultStmtCacheSize,
		SSLServerDNMatch:  true,
		DebugJDWP:         env.DebugJDWP,
	}
	if len(env.ConfigDirs) > 0 {
		p.ConfigDir = env.ConfigDirs[0]
	}
	return p
}
