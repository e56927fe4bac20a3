// Package notify implements the DriverNotifier port using Amazon SES.
// After a planning round each route's access link is mailed to the dispatch
// address, where it is handed to the assigned driver. Delivery of the mail is
// best-effort; the planned routes are already committed when this runs.
package notify

import (
	"context"
	"fmt"

	"routeplan/internal/core/domain/model/route"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI covers the subset of the SES client used by the notifier.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier mails route access links through Amazon SES.
type SESNotifier struct {
	client       sesAPI
	sender       string
	dispatchAddr string
	appBaseURL   string
}

// NewSESNotifier creates a notifier using the default AWS credential chain.
func NewSESNotifier(
	ctx context.Context, region, sender, dispatchAddr, appBaseURL string,
) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SESNotifier{
		client:       sesv2.NewFromConfig(cfg),
		sender:       sender,
		dispatchAddr: dispatchAddr,
		appBaseURL:   appBaseURL,
	}, nil
}

// NewSESNotifierWithClient creates a notifier with an explicit client.
func NewSESNotifierWithClient(client sesAPI, sender, dispatchAddr, appBaseURL string) *SESNotifier {
	return &SESNotifier{
		client:       client,
		sender:       sender,
		dispatchAddr: dispatchAddr,
		appBaseURL:   appBaseURL,
	}
}

// NotifyRoutePlanned mails the access link for a freshly planned route.
func (n *SESNotifier) NotifyRoutePlanned(ctx context.Context, r *route.Route) error {
	link := fmt.Sprintf("%s/routes/%s", n.appBaseURL, r.AccessToken().String())
	subject := "New delivery route planned"
	body := fmt.Sprintf(
		"A new route with %d stops has been planned (%.1f km, %.0f minutes).\n\n"+
			"Driver link: %s\n",
		len(r.Stops()), r.TotalDistanceKm(), r.TotalTimeMinutes(), link,
	)

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{n.dispatchAddr},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("unable to send route notification: %w", err)
	}

	return nil
}
