package commands_test

import (
	"testing"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	companyID := kernel.NewUUID()
	o := makePendingOrder(t, companyID)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), companyID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
}

func TestCancelOrderCommandHandler_Handle_AssignedOrderCancellable(t *testing.T) {
	ctx := t.Context()
	companyID := kernel.NewUUID()
	o := makePendingOrder(t, companyID)
	require.NoError(t, o.Assign())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), companyID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
}

func TestCancelOrderCommandHandler_Handle_ForeignCompanyLooksNotFound(t *testing.T) {
	ctx := t.Context()
	o := makePendingOrder(t, kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.Pending, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_CancelledTwiceRejected(t *testing.T) {
	ctx := t.Context()
	companyID := kernel.NewUUID()
	o := makePendingOrder(t, companyID)
	require.NoError(t, o.Cancel())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), companyID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
}
