package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для привязки.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// RoutingKeyConfirmed — ключ маршрутизации подтверждённых записей.
const RoutingKeyConfirmed = "confirmed"

// QueueConfirmed — очередь писем-подтверждений.
const QueueConfirmed = "enrollments.confirmed"

// GetNotificationQueues возвращает очереди уведомлений сервиса.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueConfirmed, RoutingKey: RoutingKeyConfirmed},
	}
}
