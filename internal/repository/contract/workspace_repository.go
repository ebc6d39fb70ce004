package contract

import (
	"context"

	"workchat-be/internal/entity"
	"workchat-be/internal/repository/specification"
)

type WorkspaceRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error)
	IsMember(ctx context.Context, workspaceId, userId uint) (bool, error)
}
