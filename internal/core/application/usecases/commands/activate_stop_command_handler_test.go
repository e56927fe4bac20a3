package commands_test

import (
	"testing"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/errs"
	"routeplan/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activateHandler(factory *MockRouteUoWFactory, cache *MockRouteViewCache) commands.ActivateStopCommandHandler {
	return commands.NewActivateStopCommandHandler(factory, cache, keymutex.New(), discardLogger())
}

func TestActivateStopCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := makeRoute(t, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	cmd, err := commands.NewActivateStopCommand(r.AccessToken(), 2)
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	routeRepo.On("GetByAccessToken", mock.Anything, r.AccessToken()).Return(r, nil).Once()
	routeRepo.On("Update", mock.Anything, r).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockRouteViewCache)
	cache.On("Invalidate", mock.Anything, r.AccessToken().String()).Return(nil).Once()

	h := activateHandler(factory, cache)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	s, err := r.Stop(2)
	require.NoError(t, err)
	assert.Equal(t, route.StopActive, s.Status())
	cache.AssertExpectations(t)
}

func TestActivateStopCommandHandler_Handle_CompletedStopRejected(t *testing.T) {
	ctx := t.Context()
	r := makeRoute(t, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, r.ActivateStop(1))
	_, err := r.CompleteStop(1, nowUTC())
	require.NoError(t, err)

	cmd, err := commands.NewActivateStopCommand(r.AccessToken(), 1)
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	routeRepo.On("GetByAccessToken", mock.Anything, r.AccessToken()).Return(r, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := activateHandler(factory, new(MockRouteViewCache))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
	routeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewActivateStopCommand_InvalidSequence(t *testing.T) {
	token, err := route.NewAccessToken()
	require.NoError(t, err)

	_, err = commands.NewActivateStopCommand(token, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSequenceIsInvalid)
}
