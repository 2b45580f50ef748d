package main

import (
	"os"
	"strconv"
)

// envString returns $key or def when unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return def
}

// envInt returns $key parsed as int, or def when unset or malformed.
func envInt(key string, def int) int {
	v, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return def
	}

	return v
}

// envFloat returns $key parsed as float64, or def when unset or malformed.
func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(envString(key, ""), 64)
	if err != nil {
		return def
	}

	return v
}
