package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/veracity-pipeline/capture"
)

const envPrefix = "VERACITY"

type Service struct {
	URL string `mapstructure:"url" yaml:"url"`
}
type Services struct {
	Emotion Service `mapstructure:"emotion" yaml:"emotion"`
	Pose    Service `mapstructure:"pose" yaml:"pose"`
}
type History struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}
type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}
type Root struct {
	Pipeline struct {
		Name    string `mapstructure:"name" yaml:"name"`
		Version string `mapstructure:"version" yaml:"version"`
		LogLvl  string `mapstructure:"log_level" yaml:"log_level"`
	} `mapstructure:"pipeline" yaml:"pipeline"`
	Capture  capture.Config `mapstructure:"capture" yaml:"capture"`
	Services Services       `mapstructure:"services" yaml:"services"`
	History  History        `mapstructure:"history" yaml:"history"`
	Server   Server         `mapstructure:"server" yaml:"server"`
	Paths    struct {
		Work    string `mapstructure:"work" yaml:"work"`
		Outputs string `mapstructure:"outputs" yaml:"outputs"`
	} `mapstructure:"paths" yaml:"paths"`
}

func setDefaults(v *viper.Viper) {
	c := capture.DefaultConfig()
	v.SetDefault("pipeline.name", "veracity")
	v.SetDefault("pipeline.version", "0.1.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("capture.duration", c.Duration)
	v.SetDefault("capture.width", c.Width)
	v.SetDefault("capture.height", c.Height)
	v.SetDefault("capture.fps", c.FPS)
	v.SetDefault("capture.codec", c.Codec)
	v.SetDefault("capture.device_id", c.DeviceID)
	v.SetDefault("capture.sample_rate", c.SampleRate)
	v.SetDefault("capture.channels", c.Channels)
	v.SetDefault("capture.chunk_frames", c.ChunkFrames)
	v.SetDefault("capture.backend", c.Backend)
	v.SetDefault("services.emotion.url", "http://localhost:8001")
	v.SetDefault("services.pose.url", "http://localhost:8002")
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("paths.work", "")
	v.SetDefault("paths.outputs", "outputs")
}

// Guesses lists the files tried when no explicit config path is given.
func Guesses() []string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
}

// Load reads configuration into v. An explicit path must exist; otherwise the
// first readable guess is used, and defaults apply when none is found.
// VERACITY_* environment variables override file values.
func Load(v *viper.Viper, path string) (*Root, error) {
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		for _, p := range Guesses() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", p, err)
			}
			break
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Root) Validate() error {
	c := r.Capture
	switch {
	case c.Duration <= 0:
		return errors.New("capture.duration must be positive")
	case c.SampleRate <= 0 || c.Channels <= 0 || c.ChunkFrames <= 0:
		return errors.New("capture audio settings must be positive")
	case c.Backend != capture.BackendDevice && c.Backend != capture.BackendMock:
		return fmt.Errorf("capture.backend must be %q or %q, got %q", capture.BackendDevice, capture.BackendMock, c.Backend)
	}
	return nil
}

// YAML renders the effective configuration.
func (r *Root) YAML() ([]byte, error) { return yaml.Marshal(r) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
