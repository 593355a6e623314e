// Package slogdiscard - обработчик slog, который ничего не пишет.
// Используется в тестах и как логер по умолчанию в библиотечных пакетах.
package slogdiscard

import (
	"context"
	"log/slog"
)

// NewDiscardLogger создает логер, который отбрасывает все записи.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewDiscardHandler())
}

func NewDiscardHandler() *DiscardHandler {
	return &DiscardHandler{}
}

type DiscardHandler struct{}

// Enabled возвращает false, чтобы slog не собирал атрибуты записи зря.
func (d *DiscardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (d *DiscardHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (d *DiscardHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return d
}

func (d *DiscardHandler) WithGroup(_ string) slog.Handler {
	return d
}
