package contract

import (
	"context"
	"time"

	"workchat-be/internal/entity"
	"workchat-be/internal/repository/specification"
)

// ChannelChatRepository is the append-only chat log. Append delegates id and
// timestamp assignment to the single atomic INSERT and returns the canonical
// row with author and channel denormalized.
type ChannelChatRepository interface {
	Append(ctx context.Context, channelId, userId uint, content string) (*entity.ChannelChat, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChannelChat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChannelChat, error)
	CountAfter(ctx context.Context, channelId uint, after time.Time) (int64, error)
}
