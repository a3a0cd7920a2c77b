// Package config loads the module's runtime configuration from layered
// sources: built-in defaults, an optional YAML file, then environment
// variables. Precedence is ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables read by Load. Nesting
// uses a double underscore: FLOORSPACE_UPLOADS__PROVIDER -> uploads.provider.
const EnvPrefix = "FLOORSPACE_"

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "FLOORSPACE_CONFIG"

// DefaultConfigPaths lists where a config file is searched, first hit wins.
var DefaultConfigPaths = []string{
	"floorspace.yaml",
	"floorspace.yml",
	"/etc/floorspace/config.yaml",
}

// Config is the full runtime configuration.
type Config struct {
	// ProjectID is the cloud project hosting the document database.
	ProjectID string `koanf:"project_id"`
	// CredentialsFile optionally points at a service-account key; empty
	// uses application default credentials.
	CredentialsFile string `koanf:"credentials_file"`

	Collections CollectionsConfig `koanf:"collections"`
	Uploads     UploadsConfig     `koanf:"uploads"`
	Auth        AuthConfig        `koanf:"auth"`
	Copywriter  CopywriterConfig  `koanf:"copywriter"`
}

// CollectionsConfig names the store collections and the config document.
type CollectionsConfig struct {
	Products     string `koanf:"products"`
	Testimonials string `koanf:"testimonials"`
	Gallery      string `koanf:"gallery"`
	Config       string `koanf:"config"`
	ConfigDocID  string `koanf:"config_doc_id"`
}

// Upload providers.
const (
	ProviderCloudinary = "cloudinary"
	ProviderGCS        = "gcs"
	ProviderNone       = "none"
)

// UploadsConfig selects and configures the asset host.
type UploadsConfig struct {
	Provider     string `koanf:"provider"`
	CloudName    string `koanf:"cloud_name"`
	UploadPreset string `koanf:"upload_preset"`
	Bucket       string `koanf:"bucket"`
	Prefix       string `koanf:"prefix"`
}

// AuthConfig holds the identity provider's web API key.
type AuthConfig struct {
	APIKey string `koanf:"api_key"`
}

// CopywriterConfig enables the Vertex AI description assist.
type CopywriterConfig struct {
	Enabled bool   `koanf:"enabled"`
	Region  string `koanf:"region"`
}

func defaultConfig() Config {
	return Config{
		Collections: CollectionsConfig{
			Products:     "products",
			Testimonials: "testimonials",
			Gallery:      "gallery",
			Config:       "siteConfig",
			ConfigDocID:  "global",
		},
		Uploads: UploadsConfig{
			Provider:     ProviderCloudinary,
			CloudName:    "floor-space-kenya",
			UploadPreset: "floor_space_unsigned",
			Prefix:       "media",
		},
		Copywriter: CopywriterConfig{
			Enabled: false,
			Region:  "us-central1",
		},
	}
}

// Load builds the configuration. An empty path searches the default
// locations; a missing file is not an error, only defaults and env apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(key string) string {
		key = strings.TrimPrefix(key, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings needed by the selected features.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("config: project_id must be set")
	}
	switch c.Uploads.Provider {
	case ProviderCloudinary:
		if c.Uploads.CloudName == "" || c.Uploads.UploadPreset == "" {
			return fmt.Errorf("config: uploads.cloud_name and uploads.upload_preset must be set for the cloudinary provider")
		}
	case ProviderGCS:
		if c.Uploads.Bucket == "" {
			return fmt.Errorf("config: uploads.bucket must be set for the gcs provider")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("config: unknown uploads.provider %q", c.Uploads.Provider)
	}
	if c.Copywriter.Enabled && c.Copywriter.Region == "" {
		return fmt.Errorf("config: copywriter.region must be set when the copywriter is enabled")
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
