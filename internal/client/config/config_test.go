package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000/api", c.ServerURL)
	assert.Equal(t, "session.db", c.SessionDB)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "no flags keeps defaults",
			args: nil,
			want: Config{ServerURL: "http://127.0.0.1:3000/api", SessionDB: "session.db", RequestTimeout: 10 * time.Second},
		},
		{
			name: "all flags",
			args: []string{"-a", "https://game.example/api", "-f", "/tmp/s.db", "-t", "3"},
			want: Config{ServerURL: "https://game.example/api", SessionDB: "/tmp/s.db", RequestTimeout: 3 * time.Second},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-x", "1", "-c", "cfg.json", "-f=other.db"},
			want: Config{ServerURL: "http://127.0.0.1:3000/api", SessionDB: "other.db", RequestTimeout: 10 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.LoadDefaults()
			parseFlags(&cfg, tt.args)
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	b, err := json.Marshal(map[string]any{
		"server_url":      "http://10.0.0.5:3000/api",
		"request_timeout": "2s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg, []string{"-c", path})

	assert.Equal(t, "http://10.0.0.5:3000/api", cfg.ServerURL)
	assert.Equal(t, "session.db", cfg.SessionDB, "absent keys keep defaults")
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestParseJson_Missing(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Panics(t, func() {
		parseJson(&cfg, []string{"-config", filepath.Join(t.TempDir(), "nope.json")})
	})

	assert.NotPanics(t, func() { parseJson(&cfg, nil) })
}
