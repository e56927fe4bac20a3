package notify_test

import (
	"context"
	"testing"

	"routeplan/internal/adapters/out/notify"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/route"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSESClient struct {
	input *sesv2.SendEmailInput
	err   error
}

func (c *capturingSESClient) SendEmail(
	_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options),
) (*sesv2.SendEmailOutput, error) {
	c.input = params
	if c.err != nil {
		return nil, c.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func newPlannedRoute(t *testing.T) *route.Route {
	t.Helper()

	stop, err := route.NewStop(1, kernel.NewUUID())
	require.NoError(t, err)

	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), []*route.Stop{stop}, 42.5, 95, 11.2)
	require.NoError(t, err)
	return r
}

func TestSESNotifier_NotifyRoutePlanned_SendsDriverLink(t *testing.T) {
	client := &capturingSESClient{}
	notifier := notify.NewSESNotifierWithClient(
		client, "noreply@routeplan.example", "dispatch@routeplan.example", "https://app.routeplan.example")

	plannedRoute := newPlannedRoute(t)

	err := notifier.NotifyRoutePlanned(t.Context(), plannedRoute)
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@routeplan.example", *client.input.FromEmailAddress)
	assert.Equal(t, []string{"dispatch@routeplan.example"}, client.input.Destination.ToAddresses)

	body := *client.input.Content.Simple.Body.Text.Data
	assert.Contains(t, body,
		"https://app.routeplan.example/routes/"+plannedRoute.AccessToken().String())
	assert.Contains(t, body, "1 stops")
}

func TestSESNotifier_NotifyRoutePlanned_SendFailureReturnsError(t *testing.T) {
	client := &capturingSESClient{err: assert.AnError}
	notifier := notify.NewSESNotifierWithClient(
		client, "noreply@routeplan.example", "dispatch@routeplan.example", "https://app.routeplan.example")

	err := notifier.NotifyRoutePlanned(t.Context(), newPlannedRoute(t))
	require.ErrorIs(t, err, assert.AnError)
}
