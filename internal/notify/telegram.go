package notify

import (
	"log/slog"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const DefaultQueueSize = 64

// Sender отправляет сообщение в Telegram. *tgbotapi.BotAPI ему удовлетворяет.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram отправляет оповещения в один чат из фоновой горутины.
// Notify никогда не блокирует вызывающего: при переполненной очереди
// сообщение отбрасывается с предупреждением в лог.
type Telegram struct {
	sender Sender
	chatID int64
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	queue  chan string
	wg     sync.WaitGroup
}

// NewTelegram авторизует бота по токену и запускает отправку
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	return NewTelegramWithClient(token, tgbotapi.APIEndpoint, http.DefaultClient, chatID, logger)
}

// NewTelegramWithClient - то же, что NewTelegram, с другим адресом API и HTTP клиентом
func NewTelegramWithClient(token, endpoint string, client tgbotapi.HTTPClient, chatID int64, logger *slog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ Bot authorized", slog.String("username", bot.Self.UserName))

	return NewWithSender(bot, chatID, DefaultQueueSize, logger), nil
}

// NewWithSender запускает отправку через произвольный Sender
func NewWithSender(sender Sender, chatID int64, queueSize int, logger *slog.Logger) *Telegram {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	t := &Telegram{
		sender: sender,
		chatID: chatID,
		logger: logger,
		queue:  make(chan string, queueSize),
	}

	t.wg.Add(1)
	go t.run()

	return t
}

// Notify ставит сообщение в очередь на отправку
func (t *Telegram) Notify(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	select {
	case t.queue <- text:
	default:
		t.logger.Warn("Notification queue full, message dropped", slog.String("text", text))
	}
}

// Close дожидается отправки сообщений из очереди и останавливает горутину
func (t *Telegram) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}

	t.closed = true
	close(t.queue)
	t.mu.Unlock()

	t.wg.Wait()

	return nil
}

func (t *Telegram) run() {
	defer t.wg.Done()

	for text := range t.queue {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.sender.Send(msg); err != nil {
			t.logger.Error("Failed to send notification", slog.Any("error", err))
		}
	}
}

// Nop - оповещения выключены
type Nop struct{}

func (Nop) Notify(string) {}

func (Nop) Close() error { return nil }
