// Package models содержит доменные структуры сервиса записи на занятия,
// а также вспомогательные типы для приёма данных из внешних источников (JSON-запросы).
package models

import "time"

// Residency определяет регион ценообразования ученика.
type Residency string

const (
	// ResidencyDomestic — ученики из Индии, оплата в рупиях.
	ResidencyDomestic Residency = "IND"
	// ResidencyInternational — зарубежные ученики, отображение в долларах.
	ResidencyInternational Residency = "INTL"
)

// Статусы записи. Запись создаётся в ожидании оплаты и завершает жизнь
// в одном из терминальных статусов.
const (
	StatusAwaitingPayment = "awaiting_payment"
	StatusRecorded        = "recorded"
	StatusRecordFailed    = "record_failed"
	StatusAbandoned       = "abandoned"
)

// Enrollment представляет собой основную модель записи ученика,
// используемую в бизнес-логике и хранилище. Сумма DisplayAmount хранится
// в валюте региона ученика, SettlementSubunits — в пайсах списания.
type Enrollment struct {
	UID                string    // Уникальный идентификатор записи
	Name               string    // Имя ученика
	Age                int       // Возраст ученика
	Email              string    // Электронная почта
	Phone              string    // Контактный телефон (WhatsApp)
	Residency          Residency // Регион ценообразования
	Months             int       // Количество оплачиваемых месяцев
	DisplayAmount      int       // Сумма к отображению в валюте региона
	DisplayCurrency    string    // Валюта отображения, INR или USD
	SettlementSubunits int64     // Сумма списания в пайсах
	ProviderOrderID    string    // ID заказа у платёжного провайдера
	Status             string    // Текущий статус записи
	CreatedAt          time.Time // Дата создания
	UpdatedAt          time.Time // Дата последнего изменения
}

// DummyEnrollment используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Enrollment. Возраст принимается числом
// с нижней границей 3 года, количество месяцев — минимум 1.
type DummyEnrollment struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`       // Имя ученика
	Age       int    `json:"age" validate:"required,min=3"`                // Возраст (>=3)
	Email     string `json:"email" validate:"required,email"`              // Электронная почта
	Phone     string `json:"phone" validate:"required,min=5,max=20"`       // Телефон в свободном международном формате
	Residency string `json:"residency" validate:"required,oneof=IND INTL"` // Регион: IND или INTL
	Months    int    `json:"months" validate:"required,min=1"`             // Количество месяцев
}

// CheckoutSession содержит данные, которые фронтенд передаёт виджету
// провайдера. Amount указан в пайсах, Currency всегда валюта списания.
type CheckoutSession struct {
	EnrollmentUID string          `json:"enrollment_uid"`
	Checkout      CheckoutOptions `json:"checkout"`
}

// CheckoutOptions повторяет форму конфигурационного объекта виджета Razorpay.
type CheckoutOptions struct {
	Key         string          `json:"key"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OrderID     string          `json:"order_id"`
	Prefill     CheckoutPrefill `json:"prefill"`
}

// CheckoutPrefill — контактные поля, предзаполняемые в виджете.
type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// Quote — результат расчёта стоимости без создания записи.
type Quote struct {
	FeePerMonth        int    `json:"fee_per_month"`
	DisplayAmount      int    `json:"display_amount"`
	DisplayCurrency    string `json:"display_currency"`
	SettlementSubunits int64  `json:"settlement_subunits"`
	SettlementCurrency string `json:"settlement_currency"`
}

// EnrollmentInfo — сообщение для очереди уведомлений о подтверждённой записи.
type EnrollmentInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	DisplayAmount   int    `json:"display_amount"`
	DisplayCurrency string `json:"display_currency"`
	Months          int    `json:"months"`
	PaymentID       string `json:"payment_id"`
}
