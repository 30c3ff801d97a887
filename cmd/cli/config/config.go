package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the Office Hub API.
// It can be overridden with the OFFICEHUB_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("OFFICEHUB_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
