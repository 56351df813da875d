package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// toConnectError maps domain errors to Connect codes. Errors without a more
// specific code become CodeInternal with internalMsg as the message, so
// storage details are not leaked to callers.
func toConnectError(err error, internalMsg string) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, api.ErrInvalidRequest),
		errors.Is(err, calculator.ErrInvalidExpense),
		errors.Is(err, calculator.ErrInvalidSettlement),
		errors.Is(err, calculator.ErrInvalidBalance),
		errors.Is(err, money.ErrNonFinite),
		errors.Is(err, money.ErrOutOfRange):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrNotMember):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, errors.New(internalMsg))
	}
}
