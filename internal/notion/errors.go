package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError - удалённое хранилище ответило статусом, отличным от 2xx
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: status %d (%s): %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("notion: status %d: %s", e.Status, e.Message)
}

// ConnectivityError - запрос не дошел до хранилища или не дождался ответа
// (DNS, отказ соединения, таймаут)
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("notion: %s: connection error: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsRemote сообщает, является ли err отказом хранилища
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}

// IsConnectivity сообщает, является ли err сетевой ошибкой
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

type errorBody struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newRemoteError(status int, body errorBody) *RemoteError {
	msg := body.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	if msg == "" {
		msg = "unknown error"
	}

	return &RemoteError{Status: status, Code: body.Code, Message: msg}
}
