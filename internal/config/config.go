package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"trade_logger/internal/ingest"
	"trade_logger/internal/notion"
)

const (
	DefaultPort    = "8000"
	DefaultDBPath  = "./trade_logger.db"
	DefaultLogFile = "trade_logger.log"
)

// Config содержит конфигурацию приложения
type Config struct {
	// Notion
	NotionAPIKey  string
	NotionAPIURL  string
	NotionVersion string
	Collections   ingest.Collections

	LookupTimeout time.Duration
	ScanTimeout   time.Duration

	Address string
	DBPath  string // пусто - журнал выключен

	JWTSecret string // пусто - маршруты терминала открыты

	TelegramToken  string
	TelegramChatID int64
}

// Logging - настройки логгера, читаются до создания логгера
type Logging struct {
	File  string // пусто - только stdout
	Level slog.Level
}

// LoadEnvFile подгружает переменные из .env файлов в окружение.
// Уже заданные переменные окружения не перезаписываются.
// Отсутствующий файл не ошибка.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// LoadLogging читает LOG_FILE и LOG_LEVEL
func LoadLogging() Logging {
	file, ok := os.LookupEnv("LOG_FILE")
	if !ok {
		file = DefaultLogFile
	}

	return Logging{
		File:  strings.TrimSpace(file),
		Level: ParseLevel(os.Getenv("LOG_LEVEL")),
	}
}

// ParseLevel разбирает уровень логирования, по умолчанию info
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Load загружает конфигурацию из переменных окружения.
// Отсутствие ключа или базы Notion не ошибка: сервис стартует,
// а операции записи сообщают о незаданной конфигурации.
func Load(logger *slog.Logger) *Config {
	cfg := &Config{
		NotionAPIKey:  os.Getenv("NOTION_API_KEY"),
		NotionAPIURL:  envOr("NOTION_API_URL", notion.DefaultBaseURL),
		NotionVersion: envOr("NOTION_VERSION", notion.DefaultVersion),
		Collections: ingest.Collections{
			Trades:     os.Getenv("NOTION_DATABASE_ID"),
			Accounts:   os.Getenv("NOTION_CUENTAS_DB_ID"),
			Strategies: os.Getenv("NOTION_ESTRATEGIAS_DB_ID"),
			Drawdowns:  os.Getenv("NOTION_DRAWDOWN_DB_ID"),
		},
		LookupTimeout: durationEnv(logger, "LOOKUP_TIMEOUT", ingest.DefaultLookupTimeout),
		ScanTimeout:   durationEnv(logger, "SCAN_TIMEOUT", ingest.DefaultScanTimeout),
		JWTSecret:     os.Getenv("API_JWT_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.Address = os.Getenv("ADDRESS")
	if cfg.Address == "" {
		cfg.Address = net.JoinHostPort("0.0.0.0", envOr("PORT", DefaultPort))
	}

	dbPath, ok := os.LookupEnv("DB_PATH")
	if !ok {
		dbPath = DefaultDBPath
	}
	cfg.DBPath = strings.TrimSpace(dbPath)

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn("⚠️  TELEGRAM_CHAT_ID is not a number, alerts disabled", slog.String("value", raw))
		} else {
			cfg.TelegramChatID = chatID
		}
	}

	if cfg.NotionAPIKey == "" || cfg.Collections.Trades == "" {
		logger.Warn("⚠️  NOTION_API_KEY or NOTION_DATABASE_ID not set, trades will be rejected")
	}

	if cfg.Collections.Accounts == "" {
		logger.Warn("⚠️  NOTION_CUENTAS_DB_ID not set, account relations disabled")
	}

	if cfg.Collections.Strategies == "" {
		logger.Warn("⚠️  NOTION_ESTRATEGIAS_DB_ID not set, strategy relations disabled")
	}

	if cfg.Collections.Drawdowns == "" {
		logger.Info("📊 NOTION_DRAWDOWN_DB_ID not set, drawdowns will only be logged")
	}

	if cfg.JWTSecret == "" {
		logger.Warn("⚠️  API_JWT_SECRET not set, terminal endpoints are open")
	}

	return cfg
}

// AlertsEnabled сообщает, заданы ли токен бота и чат для оповещений
func (c *Config) AlertsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

// durationEnv читает длительность: "45s", "2m" или целое число секунд
func durationEnv(logger *slog.Logger, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}

	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("⚠️  Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", def))

		return def
	}

	return d
}
