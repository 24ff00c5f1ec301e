package models

import "time"

// OutcomeStatus - итог обработки одной сделки
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusSkipped OutcomeStatus = "skipped"
	StatusError   OutcomeStatus = "error"
)

// DuplicatePageID - идентификатор в ответе для пропущенного дубликата
const DuplicatePageID = "duplicate"

// TradeOutcome - результат записи сделки
type TradeOutcome struct {
	AccountID string        `json:"cuenta"`
	Ticket    int64         `json:"ticket"`
	Status    OutcomeStatus `json:"status"`
	PageID    string        `json:"page_id,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// BatchItem - элемент одного из списков результата пакета
type BatchItem struct {
	Ticket  int64         `json:"ticket"`
	Status  OutcomeStatus `json:"status"`
	PageID  string        `json:"page_id,omitempty"`
	Message string        `json:"message,omitempty"`
	Detail  string        `json:"detail,omitempty"`
}

// BatchResult - итог обработки пакета сделок
type BatchResult struct {
	Received  int         `json:"total_recibidos"`
	Succeeded int         `json:"exitosos"`
	Skipped   int         `json:"omitidos"`
	Failed    int         `json:"fallidos"`
	Results   []BatchItem `json:"resultados"`
	Duplicate []BatchItem `json:"omitidos_detalle"`
	Errors    []BatchItem `json:"errores"`
}

// DrawdownStatus - куда попал снимок просадки
type DrawdownStatus string

const (
	// DrawdownLoggedOnly - хранилище не настроено совсем, только лог
	DrawdownLoggedOnly DrawdownStatus = "logged_only"
	// DrawdownLogged - нет отдельной базы просадок, только лог
	DrawdownLogged DrawdownStatus = "logged"
	DrawdownStored DrawdownStatus = "stored"
	DrawdownError  DrawdownStatus = "error"
)

// DrawdownResult - результат записи снимка просадки
type DrawdownResult struct {
	Status  DrawdownStatus `json:"status"`
	PageID  string         `json:"page_id,omitempty"`
	Message string         `json:"message,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

// JournalOutcome - строка журнала обработанных сделок
type JournalOutcome struct {
	ID         int64         `json:"id"`
	AccountID  string        `json:"cuenta"`
	Ticket     int64         `json:"ticket"`
	Status     OutcomeStatus `json:"status"`
	PageID     string        `json:"page_id,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// JournalDrawdown - строка журнала снимков просадки
type JournalDrawdown struct {
	ID         int64            `json:"id"`
	Snapshot   DrawdownSnapshot `json:"snapshot"`
	Status     DrawdownStatus   `json:"storage_status"`
	RecordedAt time.Time        `json:"recorded_at"`
}
