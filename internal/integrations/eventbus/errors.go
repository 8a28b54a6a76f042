package eventbus

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("eventbus: failed to connect to broker")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("eventbus: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("eventbus: failed to publish event")
)
