package config

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/olivier-w/glitchwave/internal/scene"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Raster size in pixels
	Width  int
	Height int

	// Scene timing
	SceneSwitch    time.Duration // orbit -> growth
	GlitchInterval time.Duration
	BurstWindow    time.Duration

	GrowthThreshold float64 // peak amplitude, int16 scale

	Seed int64 // 0 = seed from the clock

	// File playback
	Mute bool
	Loop bool

	DebugLog string // log file path; empty discards logs
}

// LoadDotEnv loads path into the environment. A missing file is fine;
// variables already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	def := scene.DefaultConfig()
	return Config{
		Width:  envInt("GLITCHWAVE_WIDTH", def.Width),
		Height: envInt("GLITCHWAVE_HEIGHT", def.Height),

		SceneSwitch:    envDuration("GLITCHWAVE_SCENE_SWITCH", def.SceneSwitch),
		GlitchInterval: envDuration("GLITCHWAVE_GLITCH_INTERVAL", def.GlitchInterval),
		BurstWindow:    envDuration("GLITCHWAVE_BURST_WINDOW", def.BurstWindow),

		GrowthThreshold: envFloat("GLITCHWAVE_GROWTH_THRESHOLD", def.GrowthThreshold),

		Seed: int64(envInt("GLITCHWAVE_SEED", 0)),

		Mute: envBool("GLITCHWAVE_MUTE", false),
		Loop: envBool("GLITCHWAVE_LOOP", false),

		DebugLog: envStr("GLITCHWAVE_DEBUG_LOG", ""),
	}
}

// Scene maps the values onto the scene engine's config.
func (c Config) Scene() scene.Config {
	sc := scene.DefaultConfig()
	if c.Width > 0 {
		sc.Width = c.Width
	}
	if c.Height > 0 {
		sc.Height = c.Height
	}
	sc.SceneSwitch = c.SceneSwitch
	sc.GlitchInterval = c.GlitchInterval
	sc.BurstWindow = c.BurstWindow
	sc.GrowthThreshold = c.GrowthThreshold
	return sc
}

// Rand returns the scene's random source.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("44s") or plain seconds ("44").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}
