package domain

import "strings"

// ConfigType identifies a named build configuration.
type ConfigType string

const (
	// ConfigNone is the zero value, used when no configuration has been recorded yet.
	ConfigNone ConfigType = ""
	// ConfigDebug builds with debug information and no optimization.
	ConfigDebug ConfigType = "debug"
	// ConfigRelease builds optimized artifacts.
	ConfigRelease ConfigType = "release"
)

// ParseConfigType converts a case-insensitive name into a ConfigType.
func ParseConfigType(s string) (ConfigType, error) {
	switch ConfigType(strings.ToLower(strings.TrimSpace(s))) {
	case ConfigDebug:
		return ConfigDebug, nil
	case ConfigRelease:
		return ConfigRelease, nil
	default:
		return ConfigNone, ErrInvalidConfigType
	}
}

// Valid reports whether c is debug or release.
func (c ConfigType) Valid() bool {
	return c == ConfigDebug || c == ConfigRelease
}

func (c ConfigType) String() string {
	return string(c)
}
