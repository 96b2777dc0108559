package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// envParser is a helper for parsing environment variables with validation.
// Problems are collected so every invalid variable is reported at once.
type envParser struct {
	errors []string
}

// parseString copies a non-empty environment variable into target
func (p *envParser) parseString(envName string, target *string) {
	if val := os.Getenv(envName); val != "" {
		*target = val
	}
}

// parseDuration parses a duration environment variable, ensuring it's positive
func (p *envParser) parseDuration(envName string, target *time.Duration) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s: invalid duration format (use '30s', '1m', etc.)", envName))
		return
	}

	if duration <= 0 {
		p.errors = append(p.errors, fmt.Sprintf("%s must be positive", envName))
		return
	}

	*target = duration
}

// parseEnum parses an enum environment variable from a set of valid values.
// Matching is case-insensitive and target receives the canonical spelling.
func (p *envParser) parseEnum(envName string, target *string, validValues map[string]bool) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	for valid := range validValues {
		if strings.EqualFold(val, valid) {
			*target = valid
			return
		}
	}

	validList := make([]string, 0, len(validValues))
	for k := range validValues {
		validList = append(validList, k)
	}
	sort.Strings(validList)
	p.errors = append(p.errors, fmt.Sprintf("%s must be one of: %s", envName, strings.Join(validList, ", ")))
}

// parseCountries parses a comma-separated list of code:name pairs,
// e.g. "pk:Pakistan,all:All Channels".
func (p *envParser) parseCountries(envName string, target *[]Country) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	var countries []Country
	for _, entry := range strings.Split(val, ",") {
		code, name, ok := strings.Cut(entry, ":")
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if !ok || code == "" || name == "" {
			p.errors = append(p.errors, fmt.Sprintf("%s: invalid entry %q (expected code:name)", envName, entry))
			return
		}
		countries = append(countries, Country{Code: strings.ToLower(code), Name: name})
	}

	*target = countries
}

// err returns the collected problems as a single error, or nil
func (p *envParser) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(p.errors, "\n  - "))
}
