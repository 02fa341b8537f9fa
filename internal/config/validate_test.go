package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Token:         strings.Repeat("a", 50),
		ExtensionsDir: "extensions",
		DataDir:       "data",
		WatchInterval: time.Second,
		MetricsAddr:   ":2112",
		PublishRate:   1,
		PagerTTL:      10 * time.Minute,
		CommandPrefix: "!",
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Valid config should not produce error: %v", err)
	}
}

func TestConfig_Validate_Token(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", strings.Repeat("a", 50), false},
		{"too short", strings.Repeat("a", 49), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Token = tt.token

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Token validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_WatchInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		wantErr  bool
	}{
		{"minimum valid", 100 * time.Millisecond, false},
		{"below minimum", 99 * time.Millisecond, true},
		{"normal", time.Second, false},
		{"maximum valid", time.Hour, false},
		{"too large", 2 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.WatchInterval = tt.interval

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("WatchInterval validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_PublishRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{"minimum valid", 0.01, false},
		{"below minimum", 0.001, true},
		{"zero", 0, true},
		{"negative", -1, true},
		{"normal", 1, false},
		{"maximum valid", 50, false},
		{"too large", 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.PublishRate = tt.rate

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("PublishRate validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_PagerTTL(t *testing.T) {
	tests := []struct {
		name    string
		ttl     time.Duration
		wantErr bool
	}{
		{"minimum valid", 10 * time.Second, false},
		{"below minimum", 9 * time.Second, true},
		{"normal", 10 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.PagerTTL = tt.ttl

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("PagerTTL validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_CommandPrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"single character", "!", false},
		{"multi character", "bot?", false},
		{"empty disables text commands", "", false},
		{"too long", "??????", true},
		{"whitespace", "! ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.CommandPrefix = tt.prefix

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CommandPrefix validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Storage(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		dbURL   string
		wantErr bool
	}{
		{"file store only", "data", "", false},
		{"database only", "", "postgres://localhost/db", false},
		{"both", "data", "postgres://localhost/db", false},
		{"neither", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DataDir = tt.dataDir
			cfg.DatabaseURL = tt.dbURL

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Storage validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Token:         "",                    // invalid: empty
		ExtensionsDir: "",                    // invalid: empty
		WatchInterval: 10 * time.Millisecond, // invalid: too small
		PublishRate:   0,                     // invalid: too small
		PagerTTL:      time.Second,           // invalid: too small
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for invalid config")
	}

	errMsg := err.Error()
	expectedSubstrings := []string{
		"DISCORD_TOKEN",
		"EXTENSIONS_DIR",
		"WATCH_INTERVAL",
		"PUBLISH_RATE",
		"PAGER_TTL",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(errMsg, substr) {
			t.Errorf("Error message should contain %q, got: %s", substr, errMsg)
		}
	}
}
