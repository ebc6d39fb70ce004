package implementation

import (
	"context"
	"errors"

	"workchat-be/internal/entity"
	"workchat-be/internal/mapper"
	"workchat-be/internal/model"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ChannelMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChannelMemberRepository(db *gorm.DB) contract.ChannelMemberRepository {
	return &ChannelMemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChannelMemberRepositoryImpl) Add(ctx context.Context, member *entity.ChannelMember) error {
	m := model.ChannelMember{
		ChannelId: member.ChannelId,
		UserId:    member.UserId,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// The composite primary key enforces pair uniqueness.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("already a channel member")
		}
		return err
	}
	*member = *r.mapper.ChannelMemberToEntity(&m)
	return nil
}

func (r *ChannelMemberRepositoryImpl) IsMember(ctx context.Context, channelId, userId uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ChannelMemberRepositoryImpl) ResolveMembers(ctx context.Context, channelId uint) ([]*entity.User, error) {
	var models []*model.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN channel_members cm ON cm.user_id = users.id").
		Where("cm.channel_id = ?", channelId).
		Order("users.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	users := make([]*entity.User, len(models))
	for i, m := range models {
		users[i] = r.mapper.UserToEntity(m)
	}
	return users, nil
}

// Remove supports explicit leave. Chat history keyed by (channel_id, user_id)
// stays intact; membership deletion never cascades into the log.
func (r *ChannelMemberRepositoryImpl) Remove(ctx context.Context, channelId, userId uint) error {
	return r.db.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelId, userId).
		Delete(&model.ChannelMember{}).Error
}
