package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AppContext holds the application dependencies and state.
type AppContext struct {
	Config *Config
	Notify *Dispatcher
	Disks  *DiskState
	HTTP   *http.Client

	// Sampling hooks, swapped out by tests.
	Sample func() MetricSnapshot
	Scan   func() map[string]float64
}

// DiskState holds the most recent full disk scan. The map is replaced
// wholesale on every scan so a reader never observes a partial update.
type DiskState struct {
	mu    sync.RWMutex
	usage map[string]float64
}

func (d *DiskState) Set(usage map[string]float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.usage = usage
}

// Get returns a copy of the last scan.
func (d *DiskState) Get() map[string]float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	usage := make(map[string]float64, len(d.usage))
	for mount, used := range d.usage {
		usage[mount] = used
	}
	return usage
}

// InitApp initializes the application context.
func InitApp(cfg *Config) *AppContext {
	httpClient := &http.Client{
		Timeout: ntfyTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	dispatcher := NewDispatcher(&NtfyChannel{
		URL:      cfg.NtfyURL,
		Token:    cfg.NtfyToken,
		Hostname: cfg.Hostname,
		HTTP:     httpClient,
	})

	if cfg.BotToken != "" && cfg.BotChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			slog.Error("Telegram channel disabled: bot init failed", "err", err)
		} else {
			slog.Info("Telegram channel enabled", "bot", bot.Self.UserName)
			dispatcher.Add(&TelegramChannel{Bot: bot, ChatID: cfg.BotChatID})
		}
	}

	return &AppContext{
		Config: cfg,
		Notify: dispatcher,
		Disks:  &DiskState{},
		HTTP:   httpClient,
		Sample: ReadSnapshot,
		Scan:   ScanDisks,
	}
}
