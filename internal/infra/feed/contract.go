package feed

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Metrics interface {
	IncFeedEvent(eventType, result string)
}
