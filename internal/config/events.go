package config

// EventsConfig configures reservation event publishing over RabbitMQ and
// the consumer that appends them to a log file.
type EventsConfig struct {
	Enabled bool   // EVENTS_ENABLED
	URL     string // RABBITMQ_URL
	Queue   string // EVENTS_QUEUE
	LogDir  string // EVENTS_LOG_DIR
}

// LoadEventsConfig reads the EVENTS_* and RABBITMQ_URL variables.
func LoadEventsConfig() EventsConfig {
	return EventsConfig{
		Enabled: envBool("EVENTS_ENABLED", false),
		URL:     envStr("RABBITMQ_URL", ""),
		Queue:   envStr("EVENTS_QUEUE", "reservation_events"),
		LogDir:  envStr("EVENTS_LOG_DIR", "logs"),
	}
}
