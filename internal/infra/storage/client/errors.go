package client

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = domain.Storage("client.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = domain.Storage("client.repository: failed to execute query")
)
