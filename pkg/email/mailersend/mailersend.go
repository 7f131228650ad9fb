package mailersend

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailersend/mailersend-go"

	"github.com/gamestore-zarzis/backend/pkg/email"
)

// Sender delivers through the MailerSend email API using the official SDK.
type Sender struct {
	client   *mailersend.Mailersend
	from     string
	fromName string
}

func NewSender(apiKey, from, fromName string) (*Sender, error) {
	if apiKey == "" {
		return nil, errors.New("empty mailersend api key")
	}

	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &Sender{
		client:   mailersend.NewMailersend(apiKey),
		from:     from,
		fromName: fromName,
	}, nil
}

func (s *Sender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	message := s.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: s.fromName, Email: s.from})
	message.SetRecipients([]mailersend.Recipient{{Name: input.Name, Email: input.To}})
	message.SetSubject(input.Subject)
	message.SetHTML(input.Body)
	message.SetText(input.Text)

	if _, err := s.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("mailersend send failed: %w", err)
	}

	return nil
}
