package unitofwork

import (
	"context"

	"workchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkspaceRepository() contract.WorkspaceRepository
	UserRepository() contract.UserRepository
	ChannelRepository() contract.ChannelRepository
	ChannelMemberRepository() contract.ChannelMemberRepository
	ChannelChatRepository() contract.ChannelChatRepository
}
