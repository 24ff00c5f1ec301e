package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"trade_logger/internal/httpmiddleware"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"

	// MaxPageSize - максимальный размер страницы запроса
	MaxPageSize = 100
)

// Options - параметры клиента
type Options struct {
	BaseURL string
	APIKey  string
	Version string

	// Transport - базовый транспорт; по умолчанию httpmiddleware.DefaultTransport()
	Transport http.RoundTripper

	// LogBodySize - режим логирования тел (см. httpmiddleware.Logger)
	LogBodySize int

	Logger *slog.Logger
}

// Client - клиент удалённого хранилища: запрос к базе и создание страницы
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient создает клиент. Токен и версия протокола добавляются
// к каждому запросу middleware транспорта.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	base := opts.Transport
	if base == nil {
		base = httpmiddleware.DefaultTransport()
	}

	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
		Transport: httpmiddleware.Wrap(
			base,
			httpmiddleware.RequestGetBodySetter,
			httpmiddleware.Headers(map[string]string{
				"Authorization":  "Bearer " + opts.APIKey,
				"Notion-Version": opts.Version,
				"Content-Type":   "application/json",
			}),
			httpmiddleware.RequestID,
			httpmiddleware.Logger(opts.Logger, opts.LogBodySize),
		),
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// HasCredentials сообщает, задан ли API ключ
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Query выполняет запрос к базе databaseID и возвращает одну страницу результатов
func (c *Client) Query(ctx context.Context, databaseID string, q Query) (*QueryResult, error) {
	var result QueryResult

	path := "/databases/" + databaseID + "/query"
	if err := c.post(ctx, "query", path, q, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Create создает страницу в базе databaseID
func (c *Client) Create(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	var page Page

	req := createPageRequest{
		Parent:     parent{DatabaseID: databaseID},
		Properties: props,
	}

	if err := c.post(ctx, "create", "/pages", req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) post(ctx context.Context, op, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notion: %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notion: %s: build request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectivityError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)

		return newRemoteError(resp.StatusCode, eb)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("notion: %s: decode response: %w", op, err)
	}

	return nil
}
