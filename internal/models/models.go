package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Direction - направление сделки
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Outcome - результат закрытой сделки
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

// ManualMagicNumber - magic number ручных сделок (без стратегии)
const ManualMagicNumber int64 = 0

var ErrInvalidRecord = errors.New("invalid record")

// TradeRecord - закрытая сделка, присланная терминалом.
// JSON имена полей соответствуют протоколу терминала.
type TradeRecord struct {
	AccountID    string    `json:"identificador_cuenta"`
	Ticket       int64     `json:"ticket"`
	MagicNumber  int64     `json:"magic_number"`
	Symbol       string    `json:"simbolo"`
	Direction    Direction `json:"direccion"`
	LotSize      float64   `json:"lotes"`
	ProfitLoss   float64   `json:"pnl"`
	Outcome      Outcome   `json:"resultado"`
	BalanceAfter float64   `json:"balance"`
	OpenedAt     string    `json:"fecha_apertura,omitempty"` // пусто - не передано
	ClosedAt     string    `json:"fecha_cierre"`
	Comment      string    `json:"comentario,omitempty"`

	missing []string
}

// числовые поля, которые терминал обязан прислать: ноль в них - валидное значение
var tradeRequired = []string{"lotes", "pnl", "balance"}

func (t *TradeRecord) UnmarshalJSON(data []byte) error {
	type wire TradeRecord

	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	missing, err := missingFields(data, tradeRequired)
	if err != nil {
		return err
	}

	*t = TradeRecord(w)
	t.missing = missing

	return nil
}

// Normalize приводит перечисления к верхнему регистру
func (t *TradeRecord) Normalize() {
	t.AccountID = strings.TrimSpace(t.AccountID)
	t.Symbol = strings.TrimSpace(t.Symbol)
	t.Direction = Direction(strings.ToUpper(strings.TrimSpace(string(t.Direction))))
	t.Outcome = Outcome(strings.ToUpper(strings.TrimSpace(string(t.Outcome))))
}

// Validate проверяет обязательные поля сделки
func (t TradeRecord) Validate() error {
	var problems []string

	if t.AccountID == "" {
		problems = append(problems, "identificador_cuenta is required")
	}

	if t.Ticket <= 0 {
		problems = append(problems, "ticket must be positive")
	}

	if t.Symbol == "" {
		problems = append(problems, "simbolo is required")
	}

	if t.Direction != DirectionBuy && t.Direction != DirectionSell {
		problems = append(problems, fmt.Sprintf("direccion must be BUY or SELL, got %q", t.Direction))
	}

	if t.Outcome != OutcomeWin && t.Outcome != OutcomeLoss {
		problems = append(problems, fmt.Sprintf("resultado must be WIN or LOSS, got %q", t.Outcome))
	}

	if t.ClosedAt == "" {
		problems = append(problems, "fecha_cierre is required")
	}

	for _, name := range t.missing {
		problems = append(problems, name+" is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, "; "))
	}

	return nil
}

// DrawdownSnapshot - снимок просадки счета и стратегии на момент времени
type DrawdownSnapshot struct {
	AccountID           string  `json:"identificador_cuenta"`
	MagicNumber         int64   `json:"magic_number"`
	Balance             float64 `json:"balance"`
	Equity              float64 `json:"equity"`
	PeakBalance         float64 `json:"peak_balance"`
	AccountDrawdown     float64 `json:"drawdown_cuenta"`
	AccountDrawdownPct  float64 `json:"drawdown_cuenta_pct"`
	StrategyDrawdown    float64 `json:"drawdown_estrategia"`
	StrategyMaxDrawdown float64 `json:"max_drawdown_estrategia"`
	StrategyPeakEquity  float64 `json:"peak_estrategia"`
	Timestamp           string  `json:"timestamp"`

	missing []string
}

var drawdownRequired = []string{
	"balance",
	"equity",
	"peak_balance",
	"drawdown_cuenta",
	"drawdown_cuenta_pct",
	"drawdown_estrategia",
	"max_drawdown_estrategia",
	"peak_estrategia",
	"timestamp",
}

func (d *DrawdownSnapshot) UnmarshalJSON(data []byte) error {
	type wire DrawdownSnapshot

	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	missing, err := missingFields(data, drawdownRequired)
	if err != nil {
		return err
	}

	*d = DrawdownSnapshot(w)
	d.missing = missing

	return nil
}

// Validate проверяет обязательные поля снимка
func (d DrawdownSnapshot) Validate() error {
	var problems []string

	if strings.TrimSpace(d.AccountID) == "" {
		problems = append(problems, "identificador_cuenta is required")
	}

	for _, name := range d.missing {
		problems = append(problems, name+" is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, "; "))
	}

	return nil
}

// missingFields возвращает обязательные ключи, которых нет в объекте
// или которые равны null
func missingFields(data []byte, required []string) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range required {
		v, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
