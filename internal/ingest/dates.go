package ingest

import (
	"log/slog"
	"time"
)

// CanonicalLayout - формат ISO-8601, в котором даты уходят в хранилище
const CanonicalLayout = "2006-01-02T15:04:05"

// dateLayouts перебираются по порядку, побеждает первый подошедший
var dateLayouts = []string{
	"2006.01.02T15:04:05", // формат терминала
	"2006-01-02T15:04:05",
	"2006.01.02 15:04:05",
	"2006-01-02 15:04:05",
	// без ведущих нулей: 2024.3.11T9:5:7
	"2006.1.2T15:4:5",
	"2006-1-2T15:4:5",
	"2006.1.2 15:4:5",
	"2006-1-2 15:4:5",
}

// DateNormalizer приводит даты терминала к CanonicalLayout
type DateNormalizer struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewDateNormalizer создает нормализатор с системными часами
func NewDateNormalizer(logger *slog.Logger) *DateNormalizer {
	return &DateNormalizer{now: time.Now, logger: logger}
}

// Normalize никогда не возвращает ошибку: пустая или нераспознанная
// строка заменяется текущим временем с предупреждением в лог.
func (n *DateNormalizer) Normalize(value string) string {
	if value == "" {
		n.logger.Warn("Empty timestamp, using current time")
		return n.now().Format(CanonicalLayout)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(CanonicalLayout)
		}
	}

	n.logger.Warn("Unparseable timestamp, using current time", slog.String("value", value))

	return n.now().Format(CanonicalLayout)
}
