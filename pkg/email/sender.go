package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"regexp"
)

type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	// Body is the HTML part, Text the plain-text alternative.
	Body string
	Text string
}

type Sender interface {
	Send(ctx context.Context, input SendEmailInput) error
}

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsEmailValid(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return emailRegexp.MatchString(email)
}

func (e *SendEmailInput) GenerateBodyFromHTML(templates fs.FS, templateFileName string, data interface{}) error {
	t, err := template.ParseFS(templates, templateFileName)
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || (e.Body == "" && e.Text == "") {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
