// Package config loads festival API and dashboard settings from the
// environment.
//
// Binaries import github.com/joho/godotenv/autoload so a local .env file is
// applied before Load runs. Every variable has a default; Validate reports
// all problems at once:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Unparseable numbers and durations fall back to their defaults.
package config
