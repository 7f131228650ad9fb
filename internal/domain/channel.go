package domain

import "strings"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

// LooksLikeEmail is the shape check used to downgrade sms to email.
func LooksLikeEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
