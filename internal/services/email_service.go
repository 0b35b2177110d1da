package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used for lead e-mails
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESLeadMailer sends a copy of every lead by e-mail using AWS SES
type SESLeadMailer struct {
	client      SESAPI
	fromAddress string
	toAddress   string
	logger      *slog.Logger
}

// NewSESLeadMailer creates a new SESLeadMailer from the default AWS credential chain
func NewSESLeadMailer(ctx context.Context, region, fromAddress, toAddress string, logger *slog.Logger) (*SESLeadMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewSESLeadMailerWithClient(ses.NewFromConfig(cfg), fromAddress, toAddress, logger), nil
}

func NewSESLeadMailerWithClient(client SESAPI, fromAddress, toAddress string, logger *slog.Logger) *SESLeadMailer {
	return &SESLeadMailer{
		client:      client,
		fromAddress: fromAddress,
		toAddress:   toAddress,
		logger:      logger,
	}
}

// Notify e-mails the lead to the configured address
func (m *SESLeadMailer) Notify(ctx context.Context, lead *models.Lead) error {
	subject := fmt.Sprintf("Новая заявка с сайта: %s", lead.Name)

	var text strings.Builder
	fmt.Fprintf(&text, "Имя: %s\nТелефон: %s\n", lead.Name, lead.Phone)
	if lead.Message != "" {
		fmt.Fprintf(&text, "Сообщение: %s\n", lead.Message)
	}

	var htmlBody strings.Builder
	htmlBody.WriteString("<h2>Новая заявка с сайта</h2>")
	fmt.Fprintf(&htmlBody, "<p><strong>Имя:</strong> %s</p>", html.EscapeString(lead.Name))
	fmt.Fprintf(&htmlBody, "<p><strong>Телефон:</strong> %s</p>", html.EscapeString(lead.Phone))
	if lead.Message != "" {
		fmt.Fprintf(&htmlBody, "<p><strong>Сообщение:</strong> %s</p>", html.EscapeString(lead.Message))
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{m.toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(htmlBody.String()),
					Charset: aws.String("UTF-8"),
				},
				Text: &types.Content{
					Data:    aws.String(text.String()),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}

	m.logger.Info("lead e-mail sent",
		slog.String("phone", pkglogger.MaskPhone(lead.Phone)),
		slog.String("message_id", aws.ToString(result.MessageId)))
	return nil
}
