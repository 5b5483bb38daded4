package channel

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	"sync"
)

type FakeRepository struct {
	SetReturnError bool
	GetReturnError bool
	Saved          []Config
	Gets           []Handle

	lock    sync.Mutex
	records map[Handle]Config
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{records: make(map[Handle]Config)}
}

func (r *FakeRepository) Set(ctx context.Context, config Config) error {
	if r.SetReturnError {
		return errors.New("could not save channel config")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.records[config.Handle()] = config
	r.Saved = append(r.Saved, config)
	return nil
}

func (r *FakeRepository) Get(ctx context.Context, handle Handle) (c.Optional[Config], error) {
	if r.GetReturnError {
		return c.Optional[Config]{}, errors.New("could not get channel config")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Gets = append(r.Gets, handle)
	config, ok := r.records[handle]
	return c.NewOptional(config, ok), nil
}
