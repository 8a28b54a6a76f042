package slots

import "github.com/m04kA/SMC-TableService/internal/domain"

// ErrInvalidQuery возвращается при некорректных параметрах поиска
var ErrInvalidQuery = domain.Validation("slots: invalid search query")
