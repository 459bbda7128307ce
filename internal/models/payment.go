package models

import "time"

// Payment представляет подтверждённый платёж провайдера по записи.
// Amount хранится в валюте отображения, а не в валюте списания.
type Payment struct {
	ID                int       `json:"id"`
	EnrollmentUID     string    `json:"enrollment_uid"`
	ProviderPaymentID string    `json:"provider_payment_id"`
	Amount            int       `json:"amount"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentRecord — структура, отправляемая на intake endpoint (таблица).
// Поля и их имена повторяют формат, который ожидает принимающий скрипт:
// сумма в валюте отображения, документ в base64 с именем и MIME-типом.
type PaymentRecord struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Residency  string `json:"residency"`
	Amount     int    `json:"amount"`
	Currency   string `json:"currency"`
	PaymentID  string `json:"payment_id"`
	FileName   string `json:"file_name"`
	FileMime   string `json:"file_mime"`
	FileBase64 string `json:"file_base64"`
}

// IntakeEntry — строка outbox с полезной нагрузкой для доотправки.
type IntakeEntry struct {
	ID            int64      `json:"id"`
	EnrollmentUID string     `json:"enrollment_uid"`
	Payload       []byte     `json:"payload"`
	Attempts      int        `json:"attempts"`
	LastError     string     `json:"last_error"`
	SentAt        *time.Time `json:"sent_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DummyConfirm используется для приёма полей подтверждения оплаты
// из multipart-формы вместе с файлом документа.
type DummyConfirm struct {
	EnrollmentUID     string `json:"enrollment_uid" validate:"required,uuid"`
	ProviderOrderID   string `json:"razorpay_order_id" validate:"required"`
	ProviderPaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature         string `json:"razorpay_signature" validate:"required"`
}
