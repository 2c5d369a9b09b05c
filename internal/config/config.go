package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env         string
	LoanDays    int
	ReportLimit int
}

func Load() Config {
	cfg := Config{
		Env:         get("APP_ENV", "dev"),
		LoanDays:    getInt("LOAN_DAYS", 7),
		ReportLimit: getInt("REPORT_LIMIT", 10),
	}
	return cfg
}

func get(key, def string) string { v := os.Getenv(key); if v == "" { return def }; return v }

// getInt falls back to def for unset, malformed or non-positive values.
func getInt(key string, def int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
