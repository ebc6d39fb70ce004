package contract

import (
	"context"

	"workchat-be/internal/entity"
)

// ChannelMemberRepository is the membership store: an authorization oracle
// plus member listing. It never touches the chat log.
type ChannelMemberRepository interface {
	Add(ctx context.Context, member *entity.ChannelMember) error
	IsMember(ctx context.Context, channelId, userId uint) (bool, error)
	ResolveMembers(ctx context.Context, channelId uint) ([]*entity.User, error)
	Remove(ctx context.Context, channelId, userId uint) error
}
