package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для неё.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ReportJobsQueue очередь заданий автоматической отправки отчетов.
const ReportJobsQueue = "report.jobs"

// GetReportQueues возвращает конфигурацию очередей конвейера отчетов.
func GetReportQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ReportJobsQueue, RoutingKey: ReportJobsQueue},
	}
}
