package notify

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSender struct {
	mu    sync.Mutex
	texts []string
	err   error
	block chan struct{}
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.block != nil {
		<-s.block
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.texts = append(s.texts, msg.Text)
	}

	return tgbotapi.Message{}, s.err
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.texts...)
}

func TestTelegram_SendsInOrder(t *testing.T) {
	sender := &recordingSender{}
	n := NewWithSender(sender, 42, 8, discardLogger())

	n.Notify("first")
	n.Notify("second")
	require.NoError(t, n.Close())

	assert.Equal(t, []string{"first", "second"}, sender.sent())
}

func TestTelegram_DropsWhenQueueFull(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	n := NewWithSender(sender, 42, 1, discardLogger())

	// первое сообщение может уже висеть в Send, очередь вмещает еще одно
	for i := 0; i < 10; i++ {
		n.Notify("msg")
	}

	close(sender.block)
	require.NoError(t, n.Close())

	assert.LessOrEqual(t, len(sender.sent()), 2)
	assert.NotEmpty(t, sender.sent())
}

func TestTelegram_SendErrorDoesNotStopWorker(t *testing.T) {
	sender := &recordingSender{err: errors.New("chat not found")}
	n := NewWithSender(sender, 42, 8, discardLogger())

	n.Notify("a")
	n.Notify("b")
	require.NoError(t, n.Close())

	assert.Len(t, sender.sent(), 2)
}

func TestTelegram_NotifyAfterClose(t *testing.T) {
	sender := &recordingSender{}
	n := NewWithSender(sender, 42, 8, discardLogger())

	require.NoError(t, n.Close())
	require.NoError(t, n.Close())

	assert.NotPanics(t, func() { n.Notify("late") })
	assert.Empty(t, sender.sent())
}

func TestTelegram_BotAPI(t *testing.T) {
	var (
		mu    sync.Mutex
		texts []string
		chats []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"logger","username":"trade_logger_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.NoError(t, r.ParseForm())

			mu.Lock()
			texts = append(texts, r.PostForm.Get("text"))
			chats = append(chats, r.PostForm.Get("chat_id"))
			mu.Unlock()

			io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	defer srv.Close()

	n, err := NewTelegramWithClient("TOKEN", srv.URL+"/bot%s/%s", srv.Client(), 42, discardLogger())
	require.NoError(t, err)

	n.Notify("⚠️ Trade 10042 (FTMO_01) was not stored")
	require.NoError(t, n.Close())

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"⚠️ Trade 10042 (FTMO_01) was not stored"}, texts)
	assert.Equal(t, []string{"42"}, chats)
}

func TestTelegram_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer srv.Close()

	_, err := NewTelegramWithClient("BAD", srv.URL+"/bot%s/%s", srv.Client(), 42, discardLogger())
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var n Nop
	n.Notify("ignored")
	assert.NoError(t, n.Close())
}
