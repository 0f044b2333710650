package config

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/cart-report/pkg/models/domain"
)

const envPrefix = "CART_REPORT"

var ErrInvalidLinkPattern = errors.New("link pattern must hold exactly one %d")

type StoreSettings struct {
	Profile      string `mapstructure:"profile"`
	ProfilesPath string `mapstructure:"profiles_path"`
}

type ReportSettings struct {
	DefaultCurrency string `mapstructure:"default_currency"`
	Language        string `mapstructure:"language"`
	Timezone        string `mapstructure:"timezone"`
	CartURL         string `mapstructure:"cart_url"`
	ProfileURL      string `mapstructure:"profile_url"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Settings struct {
	Store  StoreSettings  `mapstructure:"store"`
	Report ReportSettings `mapstructure:"report"`
	Server ServerSettings `mapstructure:"server"`
}

// Location resolves the report timezone.
func (s Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", s.Report.Timezone, err)
	}
	return loc, nil
}

func defaultProfilesPath() string {
	usr, err := user.Current()
	if err != nil {
		return ".cartreportcfg"
	}
	return filepath.Join(usr.HomeDir, ".cartreportcfg")
}

// LoadSettings reads an optional yaml file at path and applies CART_REPORT_* environment
// overrides, e.g. CART_REPORT_REPORT_DEFAULT_CURRENCY. An empty path skips the file.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("store.profile", "default")
	v.SetDefault("store.profiles_path", defaultProfilesPath())
	v.SetDefault("report.default_currency", "USD")
	v.SetDefault("report.language", "en")
	v.SetDefault("report.timezone", "UTC")
	v.SetDefault("report.cart_url", "/enrol/cart/view.php?id=%d")
	v.SetDefault("report.profile_url", "/user/profile.php?id=%d")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain SERVER_HOST/SERVER_PORT, as written to .env files, are read when the
	// prefixed variables are absent.
	_ = v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	settings.Report.DefaultCurrency = strings.ToUpper(strings.TrimSpace(settings.Report.DefaultCurrency))

	for key, pattern := range map[string]string{
		"report.cart_url":    settings.Report.CartURL,
		"report.profile_url": settings.Report.ProfileURL,
	} {
		if !domain.ValidLinkPattern(pattern) {
			return Settings{}, fmt.Errorf("%w: %s=%q", ErrInvalidLinkPattern, key, pattern)
		}
	}

	return settings, nil
}
