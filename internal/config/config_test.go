package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[llm]
provider = "groq"
model = "llama-3.3-70b-versatile"
timeout_seconds = 90

[registry]
dir = "/tmp/hypotheses"

[ledger]
rpc_url = "http://localhost:9650/receipts"
network = "testnet"

[graph_store]
uri = "bolt://localhost:7687"
user = "memgraph"

[pipeline]
author_wallet = "0xwallet"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 90, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, "/tmp/hypotheses", cfg.Registry.Dir)
	assert.Equal(t, "http://localhost:9650/receipts", cfg.Ledger.RPCURL)
	assert.Equal(t, "testnet", cfg.Ledger.Network)
	assert.Equal(t, "bolt://localhost:7687", cfg.GraphStore.URI)
	assert.Equal(t, "0xwallet", cfg.Pipeline.AuthorWallet)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nprovider="), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}
