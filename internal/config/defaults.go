package config

import "time"

const defaultPort = 8080

const defaultLogLevel = "info"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "drivers_db",
}

const defaultOperationTimeout = 3 * time.Second

var defaultRateLimit = RateLimit{
	Enabled: false,
	RPS:     50,
	Burst:   100,
}

const defaultDriverEventsTopic = "driver-events"

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// pprof listens on loopback unless PPROF_ADDR says otherwise
const defaultPprofAddr = "127.0.0.1:6060"
