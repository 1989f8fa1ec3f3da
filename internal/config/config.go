package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type RegistryConfig struct {
	Dir string `toml:"dir"`
}

type LedgerConfig struct {
	RPCURL  string `toml:"rpc_url"`
	Network string `toml:"network"`
}

type GraphStoreConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type PipelineConfig struct {
	AuthorWallet string `toml:"author_wallet"`
}

type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Registry   RegistryConfig   `toml:"registry"`
	Ledger     LedgerConfig     `toml:"ledger"`
	GraphStore GraphStoreConfig `toml:"graph_store"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
