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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindWorkspaceUserByEmail(ctx context.Context, workspaceId uint, email string) (*entity.User, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN workspace_members wm ON wm.user_id = users.id AND wm.workspace_id = ?", workspaceId).
		Where("users.email = ?", email).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}
