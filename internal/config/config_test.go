package config

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/viper"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("ATTENDANCE_RESET_ENABLED", true)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := fromViper(newViper(map[string]any{
		"DB_DSN":            "postgres://localhost/sitetrack",
		"JWT_ACCESS_SECRET": "secret",
	}))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Environment, qt.Equals, "development")
	c.Assert(cfg.HTTP.Host, qt.Equals, "0.0.0.0")
	c.Assert(cfg.HTTP.Port, qt.Equals, 8080)
	c.Assert(cfg.DB.Driver, qt.Equals, DriverPostgres)
	c.Assert(cfg.Auth.AccessTTL, qt.Equals, 24*time.Hour)
	c.Assert(cfg.Attendance.ResetEnabled, qt.IsTrue)
	c.Assert(cfg.Attendance.ResetAt, qt.Equals, "00:05")
	c.Assert(cfg.Pagination.DefaultPageSize, qt.Equals, 10)
	c.Assert(cfg.Pagination.MaxPageSize, qt.Equals, 100)
	c.Assert(cfg.Location, qt.Equals, time.UTC)
}

func TestFromViperOverrides(t *testing.T) {
	c := qt.New(t)

	cfg, err := fromViper(newViper(map[string]any{
		"APP_ENV":                  "production",
		"APP_TIMEZONE":             "Africa/Kampala",
		"HTTP_PORT":                9000,
		"CORS_ALLOWED_ORIGINS":     "https://a.example, https://b.example,",
		"DB_DRIVER":                "SQLite",
		"DB_DSN":                   "file:sitetrack.db",
		"JWT_ACCESS_SECRET":        "secret",
		"JWT_ACCESS_TTL":           "2h",
		"ATTENDANCE_RESET_ENABLED": false,
		"ATTENDANCE_RESET_AT":      "06:30",
	}))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Environment, qt.Equals, "production")
	c.Assert(cfg.Location.String(), qt.Equals, "Africa/Kampala")
	c.Assert(cfg.HTTP.Port, qt.Equals, 9000)
	c.Assert(cfg.HTTP.AllowedOrigins, qt.DeepEquals, []string{"https://a.example", "https://b.example"})
	c.Assert(cfg.DB.Driver, qt.Equals, DriverSQLite)
	c.Assert(cfg.Auth.AccessTTL, qt.Equals, 2*time.Hour)
	c.Assert(cfg.Attendance.ResetEnabled, qt.IsFalse)
	c.Assert(cfg.Attendance.ResetAt, qt.Equals, "06:30")
}

func TestFromViperValidation(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]any
		contains string
	}{
		{
			name:     "missing dsn",
			values:   map[string]any{"JWT_ACCESS_SECRET": "secret"},
			contains: "DB_DSN is required",
		},
		{
			name:     "missing secret",
			values:   map[string]any{"DB_DSN": "x"},
			contains: "JWT_ACCESS_SECRET is required",
		},
		{
			name:     "unknown driver",
			values:   map[string]any{"DB_DSN": "x", "JWT_ACCESS_SECRET": "s", "DB_DRIVER": "oracle"},
			contains: "DB_DRIVER",
		},
		{
			name:     "bad reset clock",
			values:   map[string]any{"DB_DSN": "x", "JWT_ACCESS_SECRET": "s", "ATTENDANCE_RESET_AT": "25:99"},
			contains: "ATTENDANCE_RESET_AT",
		},
		{
			name:     "bad timezone",
			values:   map[string]any{"DB_DSN": "x", "JWT_ACCESS_SECRET": "s", "APP_TIMEZONE": "Mars/Olympus"},
			contains: "APP_TIMEZONE",
		},
		{
			name:     "page size over max",
			values:   map[string]any{"DB_DSN": "x", "JWT_ACCESS_SECRET": "s", "PAGE_SIZE_DEFAULT": 50, "PAGE_SIZE_MAX": 20},
			contains: "PAGE_SIZE_DEFAULT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			cfg, err := fromViper(newViper(tt.values))
			c.Assert(cfg, qt.IsNil)
			c.Assert(err, qt.ErrorMatches, ".*"+tt.contains+".*")
		})
	}
}

func TestParseClock(t *testing.T) {
	c := qt.New(t)

	h, m, err := ParseClock("07:45")
	c.Assert(err, qt.IsNil)
	c.Assert(h, qt.Equals, 7)
	c.Assert(m, qt.Equals, 45)

	_, _, err = ParseClock("7pm")
	c.Assert(err, qt.IsNotNil)
}
