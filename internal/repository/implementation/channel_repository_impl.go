package implementation

import (
	"context"
	"errors"

	"workchat-be/internal/entity"
	"workchat-be/internal/mapper"
	"workchat-be/internal/model"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/repository/contract"
	"workchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChannelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChannelRepository(db *gorm.DB) contract.ChannelRepository {
	return &ChannelRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChannelRepositoryImpl) Create(ctx context.Context, channel *entity.Channel) error {
	m := r.mapper.ChannelToModel(channel)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("channel name already taken in workspace")
		}
		return err
	}
	*channel = *r.mapper.ChannelToEntity(m)
	return nil
}

func (r *ChannelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Channel, error) {
	var m model.Channel
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChannelToEntity(&m), nil
}

func (r *ChannelRepositoryImpl) FindAllForMember(ctx context.Context, workspaceId, userId uint) ([]*entity.Channel, error) {
	var models []*model.Channel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN channel_members cm ON cm.channel_id = channels.id AND cm.user_id = ?", userId).
		Where("channels.workspace_id = ?", workspaceId).
		Order("channels.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	channels := make([]*entity.Channel, len(models))
	for i, m := range models {
		channels[i] = r.mapper.ChannelToEntity(m)
	}
	return channels, nil
}
