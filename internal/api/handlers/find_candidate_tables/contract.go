package find_candidate_tables

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
)

type CandidateFinder interface {
	FindCandidateTables(ctx context.Context, q availability.CandidateQuery) ([]*domain.Table, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
