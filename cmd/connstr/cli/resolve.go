package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orawire/connstring"
)

// resolvedParams is the printable subset of a snapshot. The password is
// deliberately absent.
type resolvedParams struct {
	User          string            `json:"user,omitempty" yaml:"user,omitempty"`
	ProxyUser     string            `json:"proxy_user,omitempty" yaml:"proxy_user,omitempty"`
	Protocol      string            `json:"protocol" yaml:"protocol"`
	Host          string            `json:"host" yaml:"host"`
	Port          int               `json:"port" yaml:"port"`
	ServiceName   string            `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	SID           string            `json:"sid,omitempty" yaml:"sid,omitempty"`
	ServerType    string            `json:"server_type,omitempty" yaml:"server_type,omitempty"`
	Addresses     []resolvedAddress `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Timeout       float64           `json:"tcp_connect_timeout" yaml:"tcp_connect_timeout"`
	RetryCount    int               `json:"retry_count,omitempty" yaml:"retry_count,omitempty"`
	RetryDelay    int               `json:"retry_delay,omitempty" yaml:"retry_delay,omitempty"`
	ExpireTime    int               `json:"expire_time,omitempty" yaml:"expire_time,omitempty"`
	SDU           int               `json:"sdu" yaml:"sdu"`
	DNMatch       bool              `json:"ssl_server_dn_match" yaml:"ssl_server_dn_match"`
	CertDN        string            `json:"ssl_server_cert_dn,omitempty" yaml:"ssl_server_cert_dn,omitempty"`
	Wallet        string            `json:"wallet_location,omitempty" yaml:"wallet_location,omitempty"`
	ConnectString string            `json:"connect_string,omitempty" yaml:"connect_string,omitempty"`
}

type resolvedAddress struct {
	Protocol string `json:"protocol" yaml:"protocol"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
}

func newResolveCmd() *cobra.Command {
	var (
		user   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "resolve <connect-string>",
		Short: "Resolve a connect string or alias to its merged parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp := connstring.NewConnectParams()
			if dir := resolveConfigDir(); dir != "" {
				if err := cp.Set("config_dir", dir); err != nil {
					return err
				}
			}
			if user != "" {
				if err := cp.Set("user", user); err != nil {
					return err
				}
			}
			if err := cp.Parse(args[0]); err != nil {
				return err
			}
			snap, err := cp.Snapshot()
			if err != nil {
				return err
			}
			canonical, err := cp.ConnectString()
			if err != nil {
				return err
			}

			out := resolvedParams{
				User:          snap.User,
				ProxyUser:     snap.ProxyUser,
				Protocol:      string(snap.Protocol),
				Host:          snap.Host,
				Port:          snap.Port,
				ServiceName:   snap.ServiceName,
				SID:           snap.SID,
				ServerType:    string(snap.ServerType),
				Timeout:       snap.TCPConnectTimeout,
				RetryCount:    snap.RetryCount,
				RetryDelay:    snap.RetryDelay,
				ExpireTime:    snap.ExpireTime,
				SDU:           snap.SDU,
				DNMatch:       snap.SSLServerDNMatch,
				CertDN:        snap.SSLServerCertDN,
				Wallet:        snap.WalletLocation,
				ConnectString: canonical,
			}
			for _, a := range snap.Addresses {
				out.Addresses = append(out.Addresses, resolvedAddress{Protocol: string(a.Protocol), Host: a.Host, Port: a.Port})
			}

			w := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				return yaml.NewEncoder(w).Encode(out)
			case "text":
				fmt.Fprintf(w, "protocol:     %s\n", out.Protocol)
				fmt.Fprintf(w, "host:         %s\n", out.Host)
				fmt.Fprintf(w, "port:         %d\n", out.Port)
				if out.ServiceName != "" {
					fmt.Fprintf(w, "service name: %s\n", out.ServiceName)
				}
				if out.SID != "" {
					fmt.Fprintf(w, "sid:          %s\n", out.SID)
				}
				if out.User != "" {
					fmt.Fprintf(w, "user:         %s\n", out.User)
				}
				if len(out.Addresses) > 1 {
					fmt.Fprintf(w, "addresses:\n")
					for _, a := range out.Addresses {
						fmt.Fprintf(w, "  - %s://%s:%d\n", a.Protocol, a.Host, a.Port)
					}
				}
				fmt.Fprintf(w, "descriptor:   %s\n", out.ConnectString)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "user name to merge into the parameters")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}
