package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "redis", Addrs: []string{"localhost:6379"}},
		AI:       AIConfig{Provider: "mock"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MemoryDriverNeedsNoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Driver: "memory"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "postgres"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_OpenAIRequiresKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI = AIConfig{Provider: "openai"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}

	cfg.AI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownAIProvider(t *testing.T) {
	cfg := validConfig()
	cfg.AI.Provider = "anthropic"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown ai provider")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.AI.Provider != "mock" {
		t.Errorf("expected provider=mock, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Dimensions != 1536 {
		t.Errorf("expected dimensions=1536, got %d", cfg.AI.Dimensions)
	}
	if cfg.Search.PoolSize < 1 {
		t.Errorf("expected positive pool size, got %d", cfg.Search.PoolSize)
	}
	if cfg.Storage.KeyPrefix != "carsearch:" {
		t.Errorf("expected key prefix carsearch:, got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		AI:     AIConfig{Provider: "openai", Dimensions: 768},
		Search: SearchConfig{PoolSize: 4},
	}
	cfg.ApplyDefaults()

	if cfg.AI.Provider != "openai" {
		t.Errorf("provider overridden: %q", cfg.AI.Provider)
	}
	if cfg.AI.Dimensions != 768 {
		t.Errorf("dimensions overridden: %d", cfg.AI.Dimensions)
	}
	if cfg.Search.PoolSize != 4 {
		t.Errorf("pool size overridden: %d", cfg.Search.PoolSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("CARSEARCH_TEST_VAR", "redis:6379")
	defer os.Unsetenv("CARSEARCH_TEST_VAR")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "addr: ${CARSEARCH_TEST_VAR}", "addr: redis:6379"},
		{"unset with default", "key: ${CARSEARCH_UNSET:-fallback}", "key: fallback"},
		{"unset without default", "key: ${CARSEARCH_UNSET}", "key: "},
		{"no variables", "port: 8080", "port: 8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
