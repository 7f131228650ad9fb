package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	netsmtp "net/smtp"
	"os"
	"strconv"

	"github.com/go-gomail/gomail"

	"github.com/gamestore-zarzis/backend/pkg/email"
)

const implicitTLSPort = 465

type SMTPSender struct {
	from     string
	fromName string
	user     string
	pass     string
	host     string
	port     int
}

func NewSMTPSender(from, fromName, user, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	if host == "" || port == 0 {
		return nil, errors.New("empty smtp host/port")
	}

	return &SMTPSender{from: from, fromName: fromName, user: user, pass: pass, host: host, port: port}, nil
}

// Send submits the message over SMTP. gomail builds the message; the session
// runs on a connection that carries ctx's deadline and is closed when ctx is
// done, so a stalled server cannot outlive the caller's budget.
func (s *SMTPSender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.submit(ctx, input.To, s.buildMessage(input)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp send failed: %w", ctxErr)
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return fmt.Errorf("smtp send failed: %w", context.DeadlineExceeded)
		}
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

func (s *SMTPSender) buildMessage(input email.SendEmailInput) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(s.from, s.fromName))
	if input.Name != "" {
		msg.SetHeader("To", msg.FormatAddress(input.To, input.Name))
	} else {
		msg.SetHeader("To", input.To)
	}
	msg.SetHeader("Subject", input.Subject)

	switch {
	case input.Text != "" && input.Body != "":
		msg.SetBody("text/plain", input.Text)
		msg.AddAlternative("text/html", input.Body)
	case input.Body != "":
		msg.SetBody("text/html", input.Body)
	default:
		msg.SetBody("text/plain", input.Text)
	}

	return msg
}

// submit speaks SMTP the way gomail's dialer does: implicit TLS on 465,
// STARTTLS when offered, PLAIN auth when credentials are set.
func (s *SMTPSender) submit(ctx context.Context, to string, msg *gomail.Message) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	tlsConfig := &tls.Config{ServerName: s.host}
	if s.port == implicitTLSPort {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := netsmtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}

	if s.user != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(netsmtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
