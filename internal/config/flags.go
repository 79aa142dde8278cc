package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-r remote products API address (client)
//	-l client local API address in format [host]:[port]
//	-d server database DSN
//	-local-db client catalog SQLite file
//	-cache-db client cache SQLite file
//	-static server shell assets directory
//	-c/-config json file path with configs
//	-hash-key request integrity hash key
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-probe-url reachability probe URL
//	-sync-interval heartbeat interval (e.g., "5m")
//	-reconcile-mode resend|reference
//	-cache-version cache region tag
//	-amqp-url broker URL for registered product events
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)

	var serverAddress, clientAddress NetAddress
	var remoteAddress string
	var databaseDSN, localDSN, cacheDSN string
	var staticDir string
	var jsonConfigPath string
	var hashKey string
	var requestTimeout time.Duration
	var probeURL string
	var syncInterval time.Duration
	var reconcileMode string
	var cacheVersion string
	var amqpURL string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote products API address")
	fs.Var(&clientAddress, "l", "Client local API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&localDSN, "local-db", "", "Client catalog database file")
	fs.StringVar(&cacheDSN, "cache-db", "", "Client cache database file")
	fs.StringVar(&staticDir, "static", "", "Shell assets directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Security hash key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&probeURL, "probe-url", "", "Reachability probe URL")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync heartbeat interval (e.g., 5m)")
	fs.StringVar(&reconcileMode, "reconcile-mode", "", "Reconcile mode: resend or reference")
	fs.StringVar(&cacheVersion, "cache-version", "", "Cache region version tag")
	fs.StringVar(&amqpURL, "amqp-url", "", "AMQP URL for product events")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey: hashKey,
		},
		Storage: Storage{
			DB:        DB{DSN: databaseDSN},
			Local:     Local{DSN: localDSN, CacheDSN: cacheDSN},
			StaticDir: staticDir,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Connectivity: Connectivity{
			ProbeURL: probeURL,
		},
		Cache: Cache{
			Version: cacheVersion,
		},
		Client: Client{
			ListenAddress: clientAddress.String(),
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			ReconcileMode: reconcileMode,
		},
		Broker: Broker{
			AMQPURL: amqpURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
