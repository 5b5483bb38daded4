package channel

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Handle identifies a channel, e.g. "@acme". The "default" slot is used by the
// verification resolver when a callback carries no redeemable attempt binding.
type Handle string

const DefaultSlot = Handle("default")

// Config holds the display and invite settings for one channel. All fields
// default to empty; an absent record is indistinguishable from an all-empty one
// for the read path.
type Config struct {
	Channel    string `json:"channel"`
	Image      string `json:"image"`
	Name       string `json:"name"`
	InviteLink string `json:"inviteLink"`
}

func (c Config) Handle() Handle {
	return Handle(c.Channel)
}

// DisplayName returns the community name shown to users, falling back to a
// generic one when the config does not carry it.
func (c Config) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return "This group"
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Image, is.URL),
		validation.Field(&c.InviteLink, is.URL),
	)
}
