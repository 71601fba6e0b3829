package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imap-unseen-preview/internal/credential"
	"imap-unseen-preview/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces environment overrides, e.g. UNSEEN_PASSWORD
const EnvPrefix = "UNSEEN"

// lookupPassword is swapped in tests
var lookupPassword = credential.Get

// Load reads the configuration from the specified file and returns a validated Config struct.
// Required fields are checked here so a bad file fails before any connection is attempted.
func Load(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.Fail(models.StageConfig, "Cannot read the configuration file", err)
	}

	var values map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		values, err = parseYAML(data)
	default:
		values, err = parseKeyValue(data)
	}
	if err != nil {
		return nil, models.Fail(models.StageConfig, "Cannot parse the configuration file", err)
	}

	return resolve(newViper(values))
}

func newViper(values map[string]string) *viper.Viper {
	v := viper.New()
	v.SetDefault("port", models.DefaultPort)
	v.SetDefault("mailbox", models.DefaultMailbox)
	v.SetDefault("preview", 0)
	v.SetDefault("readonly", true)
	v.SetDefault("log_level", "warn")
	v.SetDefault("keyring_service", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	merged := make(map[string]any, len(values))
	for key, value := range values {
		merged[key] = value
	}
	// MergeConfigMap only fails on non-map input
	_ = v.MergeConfigMap(merged)
	return v
}

func resolve(v *viper.Viper) (*models.Config, error) {
	cfg := &models.Config{}

	if !v.IsSet("host") {
		return nil, models.Fail(models.StageConfig, "Host configuration not found", nil)
	}
	cfg.Host = v.GetString("host")

	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("port")))
	if err != nil {
		return nil, models.Fail(models.StageConfig, "Invalid port value", err)
	}
	cfg.Port = port

	if !v.IsSet("user") {
		return nil, models.Fail(models.StageConfig, "User configuration not found", nil)
	}
	cfg.User = v.GetString("user")

	cfg.KeyringService = v.GetString("keyring_service")
	switch {
	case v.IsSet("password"):
		cfg.Password = v.GetString("password")
	case cfg.KeyringService != "":
		password, err := lookupPassword(cfg.KeyringService, cfg.User)
		if err != nil {
			return nil, models.Fail(models.StageConfig, "Cannot read password from keyring", err)
		}
		cfg.Password = password
	default:
		return nil, models.Fail(models.StageConfig, "Password configuration not found", nil)
	}

	cfg.Mailbox = v.GetString("mailbox")

	preview, err := strconv.Atoi(strings.TrimSpace(v.GetString("preview")))
	if err != nil {
		return nil, models.Fail(models.StageConfig, "Invalid preview value", err)
	}
	cfg.Preview = preview

	readOnly, err := parseBool(v.GetString("readonly"))
	if err != nil {
		return nil, models.Fail(models.StageConfig, "Invalid readonly value", err)
	}
	cfg.ReadOnly = readOnly

	cfg.LogLevel = v.GetString("log_level")
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, models.Fail(models.StageConfig, "Invalid log_level value", err)
	}

	return cfg, nil
}

// parseBool accepts yes/no and on/off on top of the strconv spellings, case-insensitively
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(value))
}

// parseYAML reads a flat YAML mapping, nested values are rejected
func parseYAML(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch value.(type) {
		case map[interface{}]interface{}, []interface{}:
			return nil, fmt.Errorf("key %q: nested values are not supported", key)
		case nil:
			values[strings.ToLower(key)] = ""
		default:
			values[strings.ToLower(key)] = fmt.Sprint(value)
		}
	}
	return values, nil
}
