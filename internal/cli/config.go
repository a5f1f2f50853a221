package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultServer = "http://localhost:3001"

// Config is read from ~/.boardctl/config.yaml and BOARDCTL_* variables.
type Config struct {
	Server  string `mapstructure:"server"`
	Project int64  `mapstructure:"project"`
}

// Session is the signed-in state persisted between invocations.
type Session struct {
	Server string      `yaml:"server"`
	Token  string      `yaml:"token"`
	User   SessionUser `yaml:"user"`
}

// SessionUser identifies who is signed in.
type SessionUser struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// configDir returns ~/.boardctl, or BOARDCTL_HOME when set.
func configDir() string {
	if dir := os.Getenv("BOARDCTL_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".boardctl"
	}
	return filepath.Join(home, ".boardctl")
}

func sessionPath() string {
	return filepath.Join(configDir(), "session.yaml")
}

// loadConfig merges defaults, the config file and the environment.
func loadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("server", defaultServer)
	v.SetDefault("project", 0)
	v.SetEnvPrefix("boardctl")
	v.AutomaticEnv()

	path := filepath.Join(configDir(), "config.yaml")
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// loadSession reads the saved session. A missing file yields an empty session.
func loadSession() (*Session, error) {
	data, err := os.ReadFile(sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

func saveSession(s *Session) error {
	if err := os.MkdirAll(configDir(), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(sessionPath(), data, 0o600)
}

func clearSession() error {
	err := os.Remove(sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
