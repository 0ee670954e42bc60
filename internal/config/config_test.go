package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"CODEGENOME_GEMINI_API_KEY", "CODEGENOME_OPENAI_API_KEY",
		"CODEGENOME_ANTHROPIC_API_KEY", "CODEGENOME_OPENROUTER_API_KEY",
		"CODEGENOME_LLM_PROVIDER", "CODEGENOME_DB", "CODEGENOME_DB_PATH",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 20, cfg.SnapshotKeep)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.LLM.HasKey())
}

func TestLoad_ProviderKeyFromPrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CODEGENOME_LLM_PROVIDER", "anthropic")
	t.Setenv("CODEGENOME_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("CODEGENOME_AI_MAX_TOKENS", "512")
	t.Setenv("CODEGENOME_REDIS_ADDR", "localhost:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, 512, cfg.AI.MaxTokens)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_DiscoversStandardKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
db_path: /tmp/cg.db
llm:
  provider: mock
server:
  addr: ":9090"
  token_ttl: 2h
backup:
  bucket: my-bucket
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cg.db", cfg.DBPath)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, "my-bucket", cfg.Backup.Bucket)
	assert.Equal(t, "codegenome-backups", cfg.Backup.KeyPrefix)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"# comment\nCG_TEST_NEW=\"fresh\"\nexport CG_TEST_KEPT=from-file\nbroken-line\n",
	), 0o644))

	t.Setenv("CG_TEST_KEPT", "from-env")
	os.Unsetenv("CG_TEST_NEW")
	t.Cleanup(func() { os.Unsetenv("CG_TEST_NEW") })

	loadDotEnv(path)

	assert.Equal(t, "fresh", os.Getenv("CG_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("CG_TEST_KEPT"))
}
