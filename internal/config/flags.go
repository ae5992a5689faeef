// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
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

// ParseFlags parses configuration flags from the process command line.
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

// parseFlags registers the client flags on fs and parses args.
//
// Flags:
//
//	-origin page origin the socket URL is derived from
//	-path socket endpoint path
//	-token identity token
//	-require-token fail to connect without a token
//	-heartbeat heartbeat interval (e.g. "30s")
//	-base-delay first reconnection delay (e.g. "1s")
//	-max-retries reconnection budget
//	-max-delay cap for a single reconnection delay
//	-no-reconnect disable automatic reconnection
//	-api REST base URL used to refetch stale entries
//	-request-timeout REST request timeout
//	-d database DSN (SQLite file path)
//	-a status endpoint address in format [host]:[port]
//	-refresh-interval stale refresh period
//	-c/-config json file path with configs
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var statusAddress NetAddress
	var origin, path, token string
	var heartbeat, baseDelay, maxDelay time.Duration
	var maxRetries int
	var noReconnect, requireToken bool
	var apiAddress string
	var requestTimeout time.Duration
	var databaseDSN string
	var refreshInterval time.Duration
	var jsonConfigPath string

	fs.StringVar(&origin, "origin", "", "Page origin, e.g. https://app.example.com")
	fs.StringVar(&path, "path", "", "Socket endpoint path")
	fs.StringVar(&token, "token", "", "Identity token")
	fs.BoolVar(&requireToken, "require-token", false, "Fail to connect without a token")
	fs.DurationVar(&heartbeat, "heartbeat", 0, "Heartbeat interval (e.g., 30s)")
	fs.DurationVar(&baseDelay, "base-delay", 0, "First reconnection delay (e.g., 1s)")
	fs.IntVar(&maxRetries, "max-retries", 0, "Reconnection budget")
	fs.DurationVar(&maxDelay, "max-delay", 0, "Cap for a single reconnection delay")
	fs.BoolVar(&noReconnect, "no-reconnect", false, "Disable automatic reconnection")
	fs.StringVar(&apiAddress, "api", "", "REST base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.Var(&statusAddress, "a", "Status endpoint address host:port")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Stale refresh interval (e.g., 1m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var retries *int
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "max-retries" {
			retries = &maxRetries
		}
	})

	return &StructuredConfig{
		Sync: Sync{
			Origin:               origin,
			Path:                 path,
			Token:                token,
			RequireToken:         requireToken,
			HeartbeatInterval:    heartbeat,
			BaseDelay:            baseDelay,
			MaxRetries:           retries,
			MaxDelay:             maxDelay,
			DisableAutoReconnect: noReconnect,
		},
		API: API{
			Address:        apiAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Status: Status{
			HTTPAddress: statusAddress.String(),
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
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
