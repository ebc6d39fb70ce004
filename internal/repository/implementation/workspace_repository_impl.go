package implementation

import (
	"context"
	"errors"

	"workchat-be/internal/entity"
	"workchat-be/internal/mapper"
	"workchat-be/internal/model"
	"workchat-be/internal/repository/contract"
	"workchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type WorkspaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewWorkspaceRepository(db *gorm.DB) contract.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *WorkspaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error) {
	var m model.Workspace
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WorkspaceToEntity(&m), nil
}

func (r *WorkspaceRepositoryImpl) IsMember(ctx context.Context, workspaceId, userId uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
