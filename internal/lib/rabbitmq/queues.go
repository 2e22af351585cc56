package rabbitmq

const (
	// Exchange имя direct-exchange для уведомлений.
	Exchange = "notifications"
	// WelcomeRoutingKey ключ маршрутизации приветственных писем.
	WelcomeRoutingKey = "welcome"
	// WelcomeQueue очередь приветственных писем.
	WelcomeQueue = "notifications.welcome"
)

// QueueConfig очередь и ключ, которым она привязана к Exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues возвращает очереди, которые объявляют издатель и воркер.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: WelcomeQueue, RoutingKey: WelcomeRoutingKey},
	}
}
