package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

const maxPort = 65535

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global configuration flags from args. Parsing stops
// at the first non-flag argument; that argument and everything after it is
// returned as rest so a subcommand parser can consume it. -h and -help are
// left in rest for the same reason.
//
// Flags:
//
//	-a HTTP API address in format [host]:[port]
//	-d database DSN
//	-c/-config JSON or TOML file path with configs
//	-adapter-address PDS base URL
//	-identifier handle or DID to log in with
//	-session-key passphrase sealing the stored session
//	-likes-source likes listing mode (records or feed)
//	-fuzziness search fuzziness (0..1)
//	-request-timeout outbound request timeout (e.g. "30s", "1m")
//	-rate-limit outbound requests per second
//	-hash-key ETag hash key
//	-refresh-interval background refresh interval (e.g. "15m")
//	-log-path client log file path
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var configPath string
	var adapterAddress string
	var identifier string
	var sessionKey string
	var likesSource string
	var fuzziness float64
	var requestTimeout time.Duration
	var rateLimit float64
	var hashKey string
	var refreshInterval time.Duration
	var logPath string

	fs := flag.NewFlagSet("skyshelf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&adapterAddress, "adapter-address", "", "PDS base URL")
	fs.StringVar(&identifier, "identifier", "", "Handle or DID")
	fs.StringVar(&sessionKey, "session-key", "", "Session sealing passphrase")
	fs.StringVar(&likesSource, "likes-source", "", "Likes listing mode: records or feed")
	fs.Float64Var(&fuzziness, "fuzziness", 0, "Search fuzziness (0..1)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "Outbound requests per second")
	fs.StringVar(&hashKey, "hash-key", "", "ETag hash key")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Background refresh interval (e.g., 15m)")
	fs.StringVar(&logPath, "log-path", "", "Client log file path")

	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return &StructuredConfig{}, args, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return &StructuredConfig{
		App: App{
			Identifier:      identifier,
			SessionKey:      sessionKey,
			LikesSource:     likesSource,
			SearchFuzziness: fuzziness,
			HashKey:         hashKey,
			LogPath:         logPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			Address:        adapterAddress,
			RequestTimeout: requestTimeout,
			RateLimit:      rateLimit,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		FilePath: configPath,
	}, fs.Args(), nil
}

// String returns the host:port form of a, or an empty string when a is
// unset. IPv6 hosts are bracketed.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a listen address of form host:port. The host may be empty (all
// interfaces), "localhost" or an IP literal; IPv6 literals must be
// bracketed. The port must be in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > maxPort {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("host must be localhost or an IP address")
	}

	a.Host = host
	a.Port = port
	return nil
}
