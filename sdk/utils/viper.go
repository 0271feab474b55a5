// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/scc-digitalhub/blobmover/sdk/config"
)

// Config holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive, masked by Settings
type Config struct {
	StoreProvider         string `vkey:"store_provider"          env:"STORE_PROVIDER"          persist:"true" default:"azure"`
	AzureConnectionString string `vkey:"azure_connection_string" env:"AZURE_CONNECTION_STRING" persist:"true" secret:"true"`
	AzureAccountName      string `vkey:"azure_account_name"      env:"AZURE_ACCOUNT_NAME"      persist:"true"`
	AzureAccountKey       string `vkey:"azure_account_key"       env:"AZURE_ACCOUNT_KEY"       persist:"true" secret:"true"`
	AwsAccessKeyID        string `vkey:"aws_access_key_id"       env:"AWS_ACCESS_KEY_ID"       persist:"true" secret:"true"`
	AwsSecretAccessKey    string `vkey:"aws_secret_access_key"   env:"AWS_SECRET_ACCESS_KEY"   persist:"true" secret:"true"`
	AwsSessionToken       string `vkey:"aws_session_token"       env:"AWS_SESSION_TOKEN"       persist:"true" secret:"true"`
	AwsRegion             string `vkey:"aws_region"              env:"AWS_REGION"              persist:"true"`
	AwsEndpointURL        string `vkey:"aws_endpoint_url"        env:"AWS_ENDPOINT_URL"        persist:"true"`
	S3PathStyle           string `vkey:"s3_path_style"           env:"S3_PATH_STYLE"           persist:"true"`
	GcsCredentialsFile    string `vkey:"gcs_credentials_file"    env:"GOOGLE_APPLICATION_CREDENTIALS" persist:"true"`
	MinioEndpoint         string `vkey:"minio_endpoint"          env:"MINIO_ENDPOINT"          persist:"true"`
	MinioSecure           string `vkey:"minio_secure"            env:"MINIO_SECURE"            persist:"true"`

	SourceContainer      string `vkey:"source_container"      env:"SOURCE_CONTAINER"      persist:"true"`
	DestinationContainer string `vkey:"destination_container" env:"DESTINATION_CONTAINER" persist:"true"`
	SourceFile           string `vkey:"source_file"           env:"SOURCE_FILE"           persist:"false"`
	DestinationFile      string `vkey:"destination_file"      env:"DESTINATION_FILE"      persist:"false"`
	ManifestPrefix       string `vkey:"manifest_prefix"       env:"MANIFEST_PREFIX"       persist:"false"`
	LanguageMapFile      string `vkey:"language_map_file"     env:"LANGUAGE_MAP_FILE"     persist:"true"`

	PollInterval    string `vkey:"poll_interval"     env:"POLL_INTERVAL"     persist:"true" default:"2s"`
	MaxPollAttempts string `vkey:"max_poll_attempts" env:"MAX_POLL_ATTEMPTS" persist:"true" default:"0"`
	Verify          string `vkey:"verify"            env:"VERIFY"            persist:"true" default:"both"`
	LogLevel        string `vkey:"log_level"         env:"LOG_LEVEL"         persist:"true" default:"info"`

	CurrentEnvironment string `vkey:"current_environment" env:"CURRENT_ENVIRONMENT" persist:"false"`
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// configFields walks the tagged fields of Config.
func configFields(fn func(f reflect.StructField, key string)) {
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		fn(f, key)
	}
}

// BindEnvFromStruct binds env for all fields of Config using struct tags.
func BindEnvFromStruct() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configFields(func(f reflect.StructField, key string) {
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" {
			viper.SetDefault(key, def)
		}
	})
}

// WriteIniFromStruct writes a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	persistSection(cfg.Section(envName))
	cfg.Section(envName).Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return cfg.SaveTo(iniPath)
}

// UpdateIniFromStruct updates or creates the INI section from current Viper values.
func UpdateIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	sec := cfg.Section(envName)
	persistSection(sec)

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return cfg.SaveTo(iniPath)
}

func persistSection(sec *ini.Section) {
	configFields(func(f reflect.StructField, key string) {
		if f.Tag.Get("persist") != "true" {
			return
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	})
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(logger *slog.Logger, cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
		logger.Debug("using ini environment", "env", env)
	} else if env == "" || strings.EqualFold(env, "DEFAULT") {
		logger.Debug("using ini environment", "env", "DEFAULT")
	} else {
		logger.Warn("ini environment not found, falling back to DEFAULT", "env", env)
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.MergeConfig(&buf)
}

// loadDotEnv merges a dotenv file into Viper; a missing file is not an error.
func loadDotEnv(logger *slog.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	viper.SetConfigType("dotenv")
	if err := viper.MergeConfig(f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("loaded dotenv file", "path", path)
	return nil
}

// LoadConfig:
// 1) bind ENV from struct (live)
// 2) load [DEFAULT] + active section of the INI, when present
// 3) merge the working-directory .env on top
func LoadConfig(logger *slog.Logger, optionalEnv ...string) error {
	BindEnvFromStruct()

	env := resolveEnvName(optionalEnv...)
	if cfg, err := ini.Load(getIniPath()); err == nil {
		// active env: --env > DEFAULT.current_environment > default
		if env == "default" {
			if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
				env = v
			}
		}
		if err := loadIniSectionIntoViper(logger, cfg, env); err != nil {
			return fmt.Errorf("failed to load INI into viper: %w", err)
		}
	} else {
		logger.Debug("INI not found, reading env variables", "path", getIniPath())
	}

	if err := loadDotEnv(logger, DotEnvName); err != nil {
		return err
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// SaveConfig persists the current settings into the INI section of env.
func SaveConfig(optionalEnv ...string) (string, error) {
	env := resolveEnvName(optionalEnv...)
	if env == "default" {
		if cur := viper.GetString(CurrentEnvironment); cur != "" {
			env = cur
		}
	}
	if err := UpdateIniFromStruct(getIniPath(), env); err != nil {
		return "", fmt.Errorf("failed to save ini: %w", err)
	}
	return env, nil
}

// Settings returns every configured key with secrets masked.
func Settings() map[string]string {
	out := map[string]string{}
	configFields(func(f reflect.StructField, key string) {
		val := viper.GetString(key)
		if val == "" {
			return
		}
		if f.Tag.Get("secret") == "true" {
			val = maskSecret(val)
		}
		out[key] = val
	})
	return out
}

func maskSecret(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:4] + strings.Repeat("*", 8)
}

// BuildConfig converts the Viper state into the plain SDK configuration.
func BuildConfig() (config.Config, error) {
	provider := strings.ToLower(viper.GetString(StoreProvider))

	store := config.StoreConfig{
		Provider:         provider,
		ConnectionString: viper.GetString(AzureConnectionString),
		AccountName:      viper.GetString(AzureAccountName),
		AccountKey:       viper.GetString(AzureAccountKey),
		AccessKey:        viper.GetString(AwsAccessKeyID),
		SecretKey:        viper.GetString(AwsSecretAccessKey),
		AccessToken:      viper.GetString(AwsSessionToken),
		Region:           viper.GetString(AwsRegion),
		EndpointURL:      viper.GetString(AwsEndpointURL),
		UsePathStyle:     viper.GetBool(S3PathStyle),
		CredentialsFile:  viper.GetString(GcsCredentialsFile),
		Secure:           viper.GetBool(MinioSecure),
	}
	if provider == config.ProviderMinio && viper.GetString(MinioEndpoint) != "" {
		store.EndpointURL = viper.GetString(MinioEndpoint)
	}

	interval, err := ParseInterval(viper.GetString(PollInterval))
	if err != nil {
		return config.Config{}, err
	}

	attempts := 0
	if s := viper.GetString(MaxPollAttempts); s != "" {
		attempts, err = strconv.Atoi(s)
		if err != nil || attempts < 0 {
			return config.Config{}, fmt.Errorf("invalid %s %q", MaxPollAttempts, s)
		}
	}

	verify := config.VerifyMode(strings.ToLower(viper.GetString(Verify)))
	switch verify {
	case config.VerifyNone, config.VerifyDestination, config.VerifyBoth:
	case "":
		verify = config.VerifyBoth
	default:
		return config.Config{}, fmt.Errorf("invalid %s %q (none, destination, both)", Verify, verify)
	}

	return config.Config{
		Store: store,
		Copy: config.CopyConfig{
			SourceContainer:      viper.GetString(SourceContainer),
			DestinationContainer: viper.GetString(DestinationContainer),
			PollInterval:         interval,
			MaxPollAttempts:      attempts,
			Verify:               verify,
		},
	}, nil
}

// ParseInterval accepts Go durations ("500ms", "2s") or plain seconds ("2", "0.5").
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return config.DefaultPollInterval, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("invalid %s %q", PollInterval, s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", PollInterval, s)
	}
	return d, nil
}
