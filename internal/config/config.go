package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/userconfig"
	"github.com/charlesren/ylog"
	"github.com/spf13/viper"
)

// Device 一台受管设备的连接信息
type Device struct {
	Name           string          `mapstructure:"name"`
	Host           string          `mapstructure:"host"`
	Port           int             `mapstructure:"port"`
	Platform       driver.Platform `mapstructure:"platform"`
	Username       string          `mapstructure:"username"`
	Password       string          `mapstructure:"password"`
	EnablePassword string          `mapstructure:"enable_password"`
}

// Config 应用配置
type Config struct {
	LogLevel       int
	LogPath        string
	ConnectTimeout time.Duration
	Devices        []Device

	raw *viper.Viper
}

// Load reads the YAML config at path and resolves defaults. Platform
// names are validated against the builtin catalog up front so a typo
// fails at startup, not mid-session.
func Load(path string) (*Config, error) {
	v, err := userconfig.NewUserConfig(userconfig.WithPath(path))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg := &Config{
		LogLevel:       v.GetInt("server.log.applog.loglevel"),
		LogPath:        v.GetString("server.log.applog.logpath"),
		ConnectTimeout: v.GetDuration("session.connect_timeout"),
		raw:            v,
	}
	if cfg.LogPath == "" {
		cfg.LogPath = "../logs/netcli.log"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}

	if err := v.UnmarshalKey("devices", &cfg.Devices); err != nil {
		return nil, fmt.Errorf("parse devices: %w", err)
	}
	catalog := driver.Default()
	for i := range cfg.Devices {
		d := &cfg.Devices[i]
		if d.Port == 0 {
			d.Port = 22
		}
		if _, ok := catalog.Lookup(d.Platform); !ok {
			return nil, fmt.Errorf("device %s: unknown platform %q (known: %v)",
				d.Name, d.Platform, catalog.Platforms())
		}
	}
	ylog.Infof("Config", "loaded %d devices from %s", len(cfg.Devices), path)
	return cfg, nil
}

// Device returns the named device, or the only device when name is empty.
func (c *Config) Device(name string) (*Device, error) {
	if name == "" {
		if len(c.Devices) == 1 {
			return &c.Devices[0], nil
		}
		return nil, fmt.Errorf("device name required (%d devices configured)", len(c.Devices))
	}
	for i := range c.Devices {
		if c.Devices[i].Name == name {
			return &c.Devices[i], nil
		}
	}
	return nil, fmt.Errorf("device %q not found", name)
}

// Raw exposes the underlying viper for ad-hoc keys.
func (c *Config) Raw() *viper.Viper {
	return c.raw
}

func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}
