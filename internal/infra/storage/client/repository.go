package client

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableService/pkg/psqlbuilder"
)

// Repository репозиторий гостей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreate возвращает гостя с таким именем, создавая его при отсутствии.
// Идемпотентно: повторный вызов с тем же именем вернет тот же ID.
func (r *Repository) GetOrCreate(ctx context.Context, name string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// DO UPDATE нужен, чтобы RETURNING вернул id и для существующей строки
	query, args, err := psqlbuilder.Insert("clients").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	c := &domain.Client{Name: name}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}
