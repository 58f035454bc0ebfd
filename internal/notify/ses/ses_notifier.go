package ses

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"exportbridge/internal/config"
	"exportbridge/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	recipients  []string
}

// NewSESNotifier creates a FailureNotifier that emails the configured recipients.
func NewSESNotifier(cfg *config.NotifyConfig, optFns ...func(*sesv2.Options)) (port.FailureNotifier, error) {
	if cfg.FromAddress == "" || len(cfg.Recipients) == 0 {
		return nil, errors.New("ses notifier needs a from address and at least one recipient")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(awsCfg, optFns...),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		recipients:  cfg.Recipients,
	}, nil
}

func (s *sesNotifier) NotifyExportFailure(ctx context.Context, f port.ExportFailure) error {
	subject := fmt.Sprintf("Export failed for annotation %s", f.AnnotationID)
	textBody := buildFailureText(f)
	htmlBody := buildFailureHTML(f)

	from := s.fromAddress
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildFailureText(f port.ExportFailure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "An export did not complete.\n\n")
	fmt.Fprintf(&b, "Annotation: %s\nQueue: %s\nStage reached: %s\nReason: %s\n", f.AnnotationID, f.QueueID, f.Stage, f.Reason)
	if f.RequestID != "" {
		fmt.Fprintf(&b, "Request ID: %s\n", f.RequestID)
	}
	return b.String()
}

func buildFailureHTML(f port.ExportFailure) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Export failed</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Annotation</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Queue</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Stage reached</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Reason</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Request ID</td><td>%s</td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(f.AnnotationID),
		html.EscapeString(f.QueueID),
		html.EscapeString(f.Stage),
		html.EscapeString(f.Reason),
		html.EscapeString(f.RequestID),
	)
}
