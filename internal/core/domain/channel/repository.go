package channel

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
)

// Repository is the channel config store. Set is an unconditional whole-record
// overwrite keyed by the record's own handle. Get never fails for a missing
// key: absence is reported through the Optional.
type Repository interface {
	Set(ctx context.Context, config Config) error
	Get(ctx context.Context, handle Handle) (c.Optional[Config], error)
}
