package bot

import (
	"context"
	"errors"
	"sync"
)

type FakeSender struct {
	MessageReturnError bool
	PhotoReturnError   bool

	lock         sync.Mutex
	SentMessages []Message
	SentPhotos   []Photo
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) SendMessage(ctx context.Context, m Message) error {
	if s.MessageReturnError {
		return errors.New("could not send message")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentMessages = append(s.SentMessages, m)
	return nil
}

func (s *FakeSender) SendPhoto(ctx context.Context, p Photo) error {
	if s.PhotoReturnError {
		return errors.New("could not send photo")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentPhotos = append(s.SentPhotos, p)
	return nil
}
