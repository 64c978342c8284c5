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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d local database DSN
//	-data-dir agent data directory
//	-provider active storage provider name (s3, clouddrive)
//	-sync-interval scheduled sync interval (e.g., "5m")
//	-auto-sync enable the scheduled sync loop
//	-c/-config json file path with configs
//	-request-timeout control request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var controlAddress NetAddress
	var databaseDSN string
	var dataDir string
	var providerName string
	var syncInterval time.Duration
	var autoSync bool
	var jsonConfigPath string
	var requestTimeout time.Duration

	flag.Var(&controlAddress, "a", "Control API address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&dataDir, "data-dir", "", "Agent data directory")
	flag.StringVar(&providerName, "provider", "", "Storage provider name")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Scheduled sync interval (e.g., 5m)")
	flag.BoolVar(&autoSync, "auto-sync", false, "Enable the scheduled sync loop")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Control request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DataDir: dataDir,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Provider: Provider{
			Name: providerName,
		},
		Sync: Sync{
			Interval: syncInterval,
			AutoSync: autoSync,
		},
		Control: Control{
			HTTPAddress:    controlAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
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
