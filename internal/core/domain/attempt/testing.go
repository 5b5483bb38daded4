package attempt

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	"sync"
)

type FakeRepository struct {
	CreateReturnError bool
	RedeemReturnError bool
	Created           []Attempt
	Redeemed          []ID

	lock    sync.Mutex
	records map[ID]Attempt
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{records: make(map[ID]Attempt)}
}

func (r *FakeRepository) Create(ctx context.Context, attempt Attempt) error {
	if r.CreateReturnError {
		return errors.New("could not create attempt")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.records[attempt.ID] = attempt
	r.Created = append(r.Created, attempt)
	return nil
}

func (r *FakeRepository) Redeem(ctx context.Context, id ID) (c.Optional[Attempt], error) {
	if r.RedeemReturnError {
		return c.Optional[Attempt]{}, errors.New("could not redeem attempt")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Redeemed = append(r.Redeemed, id)
	attempt, ok := r.records[id]
	delete(r.records, id)
	return c.NewOptional(attempt, ok), nil
}

type FakeIdentityGenerator struct {
	NextID ID
}

func NewFakeIdentityGenerator(next ID) *FakeIdentityGenerator {
	return &FakeIdentityGenerator{NextID: next}
}

func (g *FakeIdentityGenerator) GenerateAttemptID() ID {
	return g.NextID
}
