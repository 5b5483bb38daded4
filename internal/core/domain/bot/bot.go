package bot

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
)

// Image references a photo to send: either a remote URL or a locally bundled
// asset path. Exactly one side is expected to be set.
type Image struct {
	URL      string
	FilePath string
}

func ImageFromURL(url string) Image {
	return Image{URL: url}
}

func ImageFromFile(path string) Image {
	return Image{FilePath: path}
}

// Button is an inline action attached to a message: a plain URL-opening button
// or an in-app web-surface button.
type Button struct {
	Text     string
	URL      string
	IsWebApp bool
}

type Message struct {
	ChatID int64
	Text   string
	HTML   bool
}

type Photo struct {
	ChatID  int64
	Caption string
	Image   Image
	HTML    bool
	Button  c.Optional[Button]
}

// Sender is the outbound notifier: thin, at-most-once, no retries. Call sites
// decide whether a failure is fatal or log-only.
type Sender interface {
	SendMessage(ctx context.Context, m Message) error
	SendPhoto(ctx context.Context, p Photo) error
}
