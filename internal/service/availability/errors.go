package availability

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrInvalidQuery возвращается при некорректных параметрах проверки
	ErrInvalidQuery = domain.Validation("availability: invalid query")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = domain.Storage("availability: internal error")
)
