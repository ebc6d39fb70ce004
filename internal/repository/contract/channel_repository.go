package contract

import (
	"context"

	"workchat-be/internal/entity"
	"workchat-be/internal/repository/specification"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *entity.Channel) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Channel, error)
	// FindAllForMember lists the workspace channels the user belongs to.
	FindAllForMember(ctx context.Context, workspaceId, userId uint) ([]*entity.Channel, error)
}
