// Package config handles rig player configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds animation manager settings.
type AnimationConfig struct {
	Library            string  `yaml:"library"`             // Clip library path (YAML or JSON); empty uses the built-in set
	DefaultClip        string  `yaml:"default_clip"`        // Played when the queue is empty
	TransitionDuration float32 `yaml:"transition_duration"` // Entry blend, seconds
	TakeoverRate       float32 `yaml:"takeover_rate"`       // Takeover progress per second
	QueueCapacity      int     `yaml:"queue_capacity"`
}

// PlaybackConfig holds host loop settings.
type PlaybackConfig struct {
	TickRate       int           `yaml:"tick_rate"` // Updates per second
	Duration       time.Duration `yaml:"duration"`  // Simulated time; 0 runs until interrupted
	Watch          bool          `yaml:"watch"`     // Reload the library when it changes
	Queue          []string      `yaml:"queue"`     // Clips queued at startup
	ReportInterval time.Duration `yaml:"report_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Library:            "",
			DefaultClip:        "idle",
			TransitionDuration: 0.15,
			TakeoverRate:       3.0,
			QueueCapacity:      32,
		},
		Playback: PlaybackConfig{
			TickRate:       60,
			Duration:       5 * time.Second,
			ReportInterval: time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TickInterval returns the fixed update step in seconds.
func (p PlaybackConfig) TickInterval() float32 {
	if p.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float32(p.TickRate)
}
