package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// longUnits are the suffixes time.ParseDuration does not understand.
var longUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// Duration is a time.Duration that also accepts whole days ("7d") and weeks ("2w").
type Duration struct {
	time.Duration
}

// EnvDecode implements envconfig.Decoder
func (d *Duration) EnvDecode(_ context.Context, v string) error {
	parsed, err := ParseDuration(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ParseDuration parses standard Go durations plus the day and week suffixes.
// An empty string yields zero.
func ParseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}

	for suffix, unit := range longUnits {
		count, ok := strings.CutSuffix(v, suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", suffix, v, err)
		}
		return time.Duration(n) * unit, nil
	}

	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	return parsed, nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	return d.EnvDecode(context.Background(), string(text))
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d Duration) String() string {
	return d.Duration.String()
}
