package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "400001", "Hill Road", 2, customer, order.PaymentPrepaid, 0)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	uow := newMockUoW()
	isNewPendingOrder := mock.MatchedBy(func(o *order.Order) bool {
		return o.ID().IsEqual(cmd.OrderID()) && o.Status() == order.Pending && o.GeoPoint() == nil
	})
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Add", ctx, isNewPendingOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(MockOrderUoWFactory{uow: uow})
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertAll(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	uow := newMockUoW()
	h := commands.NewCreateOrderCommandHandler(MockOrderUoWFactory{uow: uow})

	err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewCreateOrderCommandHandler(MockOrderUoWFactory{uow: uow})
	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "begin error")
	uow.AssertAll(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(MockOrderUoWFactory{uow: uow})
	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "add error")
	uow.AssertAll(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(MockOrderUoWFactory{uow: uow})
	err := h.Handle(ctx, newCreateOrderCommand(t))

	assert.EqualError(t, err, "commit error")
	uow.AssertAll(t)
}
