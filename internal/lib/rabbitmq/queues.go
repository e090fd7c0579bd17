package rabbitmq

import "github.com/magabrotheeeer/finance-calculator/internal/models"

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди событий сервиса.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "finance.affiliate.click", RoutingKey: models.EventAffiliateClick},
		{QueueName: "finance.subscription.activated", RoutingKey: models.EventSubscriptionActivated},
	}
}
