package notifier

import "errors"

var (
	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish ошибка публикации сообщения
	ErrPublish = errors.New("notifier: failed to publish message")

	// ErrMarshal ошибка сериализации события
	ErrMarshal = errors.New("notifier: failed to marshal event")
)
