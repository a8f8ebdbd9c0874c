package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds homeseed configuration.
type Config struct {
	Database DatabaseConfig
	Registry RegistryConfig
	Locale   LocaleConfig
	Folder   FolderConfig
	Layout   LayoutConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// RegistryConfig points at the installed-component manifest.
type RegistryConfig struct {
	Manifest string
}

// LocaleConfig holds the runtime language. An empty language is derived from $LANG.
type LocaleConfig struct {
	Language string
}

// FolderConfig holds folder defaults.
type FolderConfig struct {
	DefaultTitle string `mapstructure:"default_title"`
}

// LayoutConfig controls where the default layout document is looked up.
type LayoutConfig struct {
	SearchPaths []string `mapstructure:"search_paths"`
	FileName    string   `mapstructure:"file_name"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix HOMESEED_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("HOMESEED_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HOMESEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	c.Database.Path = expandHome(c.Database.Path)
	c.Registry.Manifest = expandHome(c.Registry.Manifest)
	for i, p := range c.Layout.SearchPaths {
		c.Layout.SearchPaths[i] = expandHome(p)
	}
	if c.Locale.Language == "" {
		c.Locale.Language = os.Getenv("LANG")
	}
	c.Locale.Language = DetectLanguage(c.Locale.Language)

	return c, nil
}

// Save writes the provided config to path, creating the directory if needed.
// An empty path writes to the default config location.
func Save(path string, cfg Config) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("registry.manifest", cfg.Registry.Manifest)
	v.Set("locale.language", cfg.Locale.Language)
	v.Set("folder.default_title", cfg.Folder.DefaultTitle)
	v.Set("layout.search_paths", cfg.Layout.SearchPaths)
	v.Set("layout.file_name", cfg.Layout.FileName)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// DefaultPath returns the config file location honoring HOMESEED_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("HOMESEED_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

// DetectLanguage reduces a locale string such as "fr_FR.UTF-8" to its base
// language code ("fr"). Unparseable or POSIX locales yield "en".
func DetectLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "en"
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(xdg.DataHome, "homeseed", "launcher.db"))
	v.SetDefault("registry.manifest", filepath.Join(configDir(), "components.yaml"))
	v.SetDefault("locale.language", "")
	v.SetDefault("folder.default_title", "Folder")
	v.SetDefault("layout.search_paths", []string{".", configDir()})
	v.SetDefault("layout.file_name", "default_workspace.xml")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

func configDir() string {
	return filepath.Join(xdg.ConfigHome, "homeseed")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(homeDir(), rest)
	}
	return p
}
