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

// ParseFlags parses all relay configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN for the price-history store
//	-c/-config json file path with configs
//	-arcium-base-url remote compute network base URL
//	-oracle-url primary price oracle endpoint
//	-market-api-url secondary market API base URL
//	-poll-interval price polling period (e.g., "10s")
//	-request-timeout request timeout (e.g., "30s", "1m")
//
// Credentials are deliberately not accepted as flags; they would leak into
// process listings. Use APP_ARCIUM_API_KEY / APP_ARCIUM_PUBLIC_KEY.
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var arciumBaseURL string
	var oracleURL string
	var marketAPIURL string
	var pollInterval time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&arciumBaseURL, "arcium-base-url", "", "Remote compute network base URL")
	flag.StringVar(&oracleURL, "oracle-url", "", "Primary price oracle endpoint")
	flag.StringVar(&marketAPIURL, "market-api-url", "", "Secondary market API base URL")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Price polling period (e.g., 10s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			ArciumBaseURL: arciumBaseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Prices: Prices{
			OracleURL:    oracleURL,
			MarketAPIURL: marketAPIURL,
			PollInterval: pollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
