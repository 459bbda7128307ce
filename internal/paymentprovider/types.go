package paymentprovider

// CreateOrderRequest представляет запрос на создание заказа в Razorpay.
// Amount указывается в пайсах, Currency — валюта списания.
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"` // дополнительная инфа: enrollment_uid, residency
}

// Order представляет ответ Razorpay на создание заказа.
type Order struct {
	ID        string `json:"id"`     // ID заказа, передаётся в виджет как order_id
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"` // created, attempted, paid
	CreatedAt int64  `json:"created_at"`
}

// WebhookPayload представляет тело webhook-события Razorpay.
type WebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
				Amount  int64  `json:"amount"`   // сумма списания в пайсах
				Currency string `json:"currency"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}
