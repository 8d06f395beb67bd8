package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
profiles:
  prod:
    region: eu-west-1
    kms_key_id: alias/aws/ebs
    client_name: acme
  staging:
    region: us-east-1
    kms_key_id: alias/staging-key
`)

	cfg, err := Load(path, "prod")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "alias/aws/ebs", cfg.KMSKeyID)
	assert.Equal(t, "acme", cfg.ClientName)
}

func TestLoadClientNameDefaultsToProfile(t *testing.T) {
	path := writeConfigFile(t, `
profiles:
  staging:
    region: us-east-1
    kms_key_id: alias/staging-key
`)

	cfg, err := Load(path, "staging")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.ClientName)
}

func TestLoadUnknownProfile(t *testing.T) {
	path := writeConfigFile(t, `
profiles:
  prod:
    region: eu-west-1
    kms_key_id: alias/aws/ebs
`)

	cfg, err := Load(path, "missing")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoadMissingProfileArgument(t *testing.T) {
	cfg, err := Load("", "")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"), "prod")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errHint string
	}{
		{
			name: "Missing region",
			content: `
profiles:
  prod:
    kms_key_id: alias/aws/ebs
`,
			errHint: "region",
		},
		{
			name: "Missing KMS key",
			content: `
profiles:
  prod:
    region: eu-west-1
`,
			errHint: "kms_key_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			cfg, err := Load(path, "prod")

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errHint)
		})
	}
}

func TestLogFileName(t *testing.T) {
	cfg := &Config{ClientName: "acme"}
	assert.Equal(t, "ebs_encryption_acme.log", cfg.LogFileName())
}
