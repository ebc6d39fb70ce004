package contract

import (
	"context"

	"workchat-be/internal/entity"
	"workchat-be/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	// FindWorkspaceUserByEmail resolves an invitee scoped to a workspace; a
	// user outside the workspace is indistinguishable from an absent one.
	FindWorkspaceUserByEmail(ctx context.Context, workspaceId uint, email string) (*entity.User, error)
}
