// Package config loads per-profile run configuration from file and
// environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings for one migration run.
type Config struct {
	Profile    string // AWS shared-config profile to run under
	Region     string
	KMSKeyID   string // KMS key used to encrypt snapshot copies and volumes
	ClientName string // Used only for log and file naming
}

// Load reads the configuration for the given profile from the config file,
// with environment variables (EBS_ENCRYPTOR_REGION, EBS_ENCRYPTOR_KMS_KEY_ID)
// taking precedence. The file holds one section per profile:
//
//	profiles:
//	  prod:
//	    region: eu-west-1
//	    kms_key_id: alias/aws/ebs
//	    client_name: acme
func Load(configFile, profile string) (*Config, error) {
	if profile == "" {
		return nil, fmt.Errorf("a profile is required")
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	section := v.Sub("profiles." + profile)
	if section == nil {
		return nil, fmt.Errorf("profile %q not found in %s", profile, v.ConfigFileUsed())
	}
	section.SetEnvPrefix("EBS_ENCRYPTOR")
	section.AutomaticEnv()

	cfg := &Config{
		Profile:    profile,
		Region:     section.GetString("region"),
		KMSKeyID:   section.GetString("kms_key_id"),
		ClientName: section.GetString("client_name"),
	}
	if cfg.ClientName == "" {
		cfg.ClientName = profile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required for profile %q", c.Profile)
	}
	if c.KMSKeyID == "" {
		return fmt.Errorf("kms_key_id is required for profile %q", c.Profile)
	}
	return nil
}

// LogFileName returns the per-run log file name for this configuration.
func (c *Config) LogFileName() string {
	return fmt.Sprintf("ebs_encryption_%s.log", c.ClientName)
}
