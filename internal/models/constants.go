package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

const (
	// EndOfDayHour задает границу рабочего дня для брони "до конца дня"
	EndOfDayHour   = 18
	EndOfDayMinute = 0

	// DefaultSessionTTL время жизни снимка сессии в Redis
	DefaultSessionTTL = 24 * 60 * 60 // 24 часа в секундах

	// DefaultGatewayTimeout таймаут вызова шлюза бронирования в секундах
	DefaultGatewayTimeout = 10

	// WorkerQueueSize размер очереди воркера синхронизации
	WorkerQueueSize = 1000
)
