package config

import "time"

const (
	envPort          = "PORT"
	envStoreDriver   = "STORE_DRIVER"
	envStoreTimeout  = "STORE_TIMEOUT"
	envHistoryLimit  = "HISTORY_LIMIT"
	envPeriodSeconds = "PERIOD_SECONDS"
	envClockStep     = "CLOCK_STEP_SECONDS"
	envMetricsOn     = "METRICS_ENABLED"

	defaultPort          = "4000"
	defaultStoreDriver   = DriverFile
	defaultStoreKey      = "trickshot_scoreboard"
	defaultStoreDir      = "data"
	defaultStoreTimeout  = 2 * time.Second
	defaultRetryAttempts = 3
	defaultHistoryLimit  = 100
	defaultMetricsPort   = "9090"
	defaultServiceName   = "rink-scoreboard"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Drivers lists every supported store driver.
func Drivers() []string {
	return []string{DriverMemory, DriverFile, DriverRedis, DriverPostgres, DriverSQLite}
}
