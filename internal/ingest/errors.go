package ingest

import (
	"errors"
	"net/http"

	"trade_logger/internal/notion"
)

// ErrNotConfigured - не задан API ключ или id основной базы
var ErrNotConfigured = errors.New("notion api key or database id not configured")

// HTTPStatus сопоставляет ошибку записи сделки HTTP статусу ответа терминалу
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError
	case notion.IsConnectivity(err):
		return http.StatusServiceUnavailable
	}

	if re, ok := notion.IsRemote(err); ok {
		return re.Status
	}

	return http.StatusInternalServerError
}
