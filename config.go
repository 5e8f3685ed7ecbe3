package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings, sourced from the environment once at startup
// and read-only afterwards.
type Config struct {
	NtfyURL   string
	NtfyToken string
	Hostname  string

	TempLimit int
	DiskLimit int
	RAMLimit  int

	DailyTime        TimePoint
	WeeklyDay        time.Weekday
	CheckIntervalSec int

	DockerSocket string

	// Optional Telegram delivery channel.
	BotToken  string
	BotChatID int64
}

// TimePoint is a wall-clock time of day.
type TimePoint struct {
	Hour   int
	Minute int
}

func (t TimePoint) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is honored if present. Invalid values fall back to
// defaults with a warning.
func LoadConfig() *Config {
	godotenv.Load()

	hostname := getEnv("HOSTNAME", "")
	if hostname == "" {
		if h, err := os.Hostname(); err == nil {
			hostname = h
		} else {
			hostname = "unknown"
		}
	}

	return &Config{
		NtfyURL:          getEnv("NTFY_URL", ""),
		NtfyToken:        getEnv("NTFY_TOKEN", ""),
		Hostname:         hostname,
		TempLimit:        getEnvInt("TEMP_LIMIT", 82),
		DiskLimit:        getEnvInt("DISK_LIMIT", 90),
		RAMLimit:         getEnvInt("RAM_LIMIT", 92),
		DailyTime:        getEnvClock("DAILY_TIME", TimePoint{Hour: 8}),
		WeeklyDay:        getEnvWeekday("WEEKLY_DAY", time.Monday),
		CheckIntervalSec: getEnvInt("CHECK_INTERVAL", 60),
		DockerSocket:     getEnv("DOCKER_SOCKET", "/var/run/docker.sock"),
		BotToken:         getEnv("BOT_TOKEN", ""),
		BotChatID:        getEnvInt64("BOT_CHAT_ID", 0),
	}
}

// Thresholds returns the alert limits used by the snapshot evaluator.
func (c *Config) Thresholds() Thresholds {
	return Thresholds{
		TempLimit: c.TempLimit,
		DiskLimit: c.DiskLimit,
		RAMLimit:  c.RAMLimit,
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func getEnvClock(key string, def TimePoint) TimePoint {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	tp, err := parseClock(raw)
	if err != nil {
		slog.Warn("Invalid time in environment, using default", "key", key, "value", raw, "default", def.String())
		return def
	}
	return tp
}

func getEnvWeekday(key string, def time.Weekday) time.Weekday {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	wd, err := parseWeekday(raw)
	if err != nil {
		slog.Warn("Invalid weekday in environment, using default", "key", key, "value", raw, "default", def.String())
		return def
	}
	return wd
}

// parseClock parses a 24h "HH:MM" string.
func parseClock(s string) (TimePoint, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimePoint{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimePoint{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimePoint{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimePoint{Hour: h, Minute: m}, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
