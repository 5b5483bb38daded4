package attempt

import (
	"context"
	"errors"
	"time"

	"gatekeeper/internal/core/domain/channel"
	c "gatekeeper/internal/core/domain/common"
)

// ID is the opaque token correlating a challenge issuance with its later
// callback from the web surface.
type ID string

var ErrChatMismatch = errors.New("verification attempt is bound to another chat")

// Attempt binds an issued verification attempt to the channel and private chat
// it was created for. The binding is written at issuance time and redeemed by
// at most one callback.
type Attempt struct {
	ID            ID             `json:"id"`
	ChannelHandle channel.Handle `json:"channel"`
	ChatID        int64          `json:"chatId"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// BelongsTo reports whether the attempt may be redeemed on behalf of the given
// user. An attempt with no recorded chat is redeemable by anyone.
func (a Attempt) BelongsTo(userID int64) bool {
	return a.ChatID == 0 || a.ChatID == userID
}

type IdentityGenerator interface {
	GenerateAttemptID() ID
}

// Repository stores in-flight attempts. Redeem is destructive: the first call
// for an ID removes the record, later calls observe absence.
type Repository interface {
	Create(ctx context.Context, attempt Attempt) error
	Redeem(ctx context.Context, id ID) (c.Optional[Attempt], error)
}
