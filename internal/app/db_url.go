package app

import (
	"net/url"
	"strings"
)

const binaryParametersKey = "binary_parameters"

// NormalizeDBURL turns on lib/pq binary parameters unless the URL already
// sets them, so statements are not prepared separately behind pgbouncer.
func NormalizeDBURL(raw string, binaryParameters bool) string {
	if !binaryParameters {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return appendDSNParameter(trimmed)
	}

	query := parsed.Query()
	if query.Get(binaryParametersKey) == "" {
		query.Set(binaryParametersKey, "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func appendDSNParameter(dsn string) string {
	if dsn == "" {
		return dsn
	}
	for _, token := range strings.Fields(dsn) {
		if strings.HasPrefix(token, binaryParametersKey+"=") {
			return dsn
		}
	}
	return dsn + " " + binaryParametersKey + "=yes"
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
