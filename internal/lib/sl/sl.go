// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога
// при записи ошибок и денежных сумм.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to create order", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Amount возвращает slog.Attr с суммой и валютой в одной группе.
// Используется при логировании платежей и квот.
func Amount(value int, currency string) slog.Attr {
	return slog.Attr{
		Key:   "amount",
		Value: slog.GroupValue(slog.Int("value", value), slog.String("currency", currency)),
	}
}
