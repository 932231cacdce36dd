package usecase

import (
	"context"
)

// WithinUnitOfWork runs fn inside a fresh unit of work. The unit of work is
// committed when fn succeeds; otherwise it is rolled back and fn's error is
// returned unchanged. The unit of work is always closed.
func WithinUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, fn func(ctx context.Context, uow UnitOfWork) error) error {
	uow, err := factory.New(ctx)
	if err != nil {
		return err
	}
	defer uow.Close(context.WithoutCancel(ctx))

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(ctx, uow); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	return uow.Commit(ctx)
}
