package commands

import (
	"context"
	"log/slog"

	"account-shop/internal/domain/account"
	"account-shop/internal/infra"
	"account-shop/internal/pkg/errs"
	"account-shop/internal/usecase/shared"
)

var ErrNothingToImport = errs.New("nothing to import")

// ImportResult reports what happened to each pair of an import request.
type ImportResult struct {
	Imported   int
	Duplicates []string
	Rejected   []account.ImportError
}

type InventoryCommands interface {
	// ImportAccounts parses a comma-separated email:password list and inserts
	// the valid pairs. Duplicate emails are reported, not fatal: the rest of
	// the batch still lands.
	ImportAccounts(ctx context.Context, raw string) (*ImportResult, error)
}

type inventoryUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryUseCase(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryUseCaseImpl{uow: uow}
}

func (u *inventoryUseCaseImpl) ImportAccounts(ctx context.Context, raw string) (*ImportResult, error) {
	accounts, rejected := account.ParseImportList(raw)
	if len(accounts) == 0 && len(rejected) == 0 {
		return nil, ErrNothingToImport
	}

	result := &ImportResult{Rejected: rejected}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, a := range accounts {
			if err := tx.Accounts().Insert(ctx, a); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					result.Duplicates = append(result.Duplicates, a.Email())
					continue
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("accounts imported",
		"imported", result.Imported,
		"duplicates", len(result.Duplicates),
		"rejected", len(result.Rejected),
	)
	return result, nil
}
