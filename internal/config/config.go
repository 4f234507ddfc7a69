package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Audio   AudioConfig   `yaml:"audio"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Tools   ToolsConfig   `yaml:"tools"`
	Paths   PathsConfig   `yaml:"paths"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Address     string `yaml:"address"`
	Port        int    `yaml:"port"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	MaxRuns     int    `yaml:"max_runs"`
}

type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type ToolsConfig struct {
	FFmpegBinary string `yaml:"ffmpeg_binary"`
	YtDlpBinary  string `yaml:"ytdlp_binary"`
}

type PathsConfig struct {
	Temp string `yaml:"temp"`
}

type WatchConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("audio.sample_rate must not be negative, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels < 0 || c.Audio.Channels > 2 {
		return fmt.Errorf("audio.channels must be 1 or 2, got %d", c.Audio.Channels)
	}
	if c.Watch.Enabled && c.Watch.Input == "" {
		return fmt.Errorf("watch.input is required when watch mode is enabled")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}
	if c.Server.MaxRuns == 0 {
		c.Server.MaxRuns = 16
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Tools.FFmpegBinary == "" {
		c.Tools.FFmpegBinary = "ffmpeg"
	}
	if c.Tools.YtDlpBinary == "" {
		c.Tools.YtDlpBinary = "yt-dlp"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Watch.Output == "" {
		c.Watch.Output = "data/output"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}

// ListenAddr returns the host:port string the HTTP server binds to
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
