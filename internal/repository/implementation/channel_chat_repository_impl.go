package implementation

import (
	"context"
	"errors"
	"time"

	"workchat-be/internal/entity"
	"workchat-be/internal/mapper"
	"workchat-be/internal/model"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/repository/contract"
	"workchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChannelChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChannelChatRepository(db *gorm.DB) contract.ChannelChatRepository {
	return &ChannelChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

// Append inserts the row and re-reads the canonical record. CreatedAt is left
// zero so the column default (CURRENT_TIMESTAMP) assigns it inside the INSERT;
// the id comes from the sequence. Concurrent appends to one channel therefore
// serialize in the store, not here.
func (r *ChannelChatRepositoryImpl) Append(ctx context.Context, channelId, userId uint, content string) (*entity.ChannelChat, error) {
	m := model.ChannelChat{
		ChannelId: channelId,
		UserId:    userId,
		Content:   content,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NotFound("channel")
		}
		return nil, err
	}

	return r.FindOne(ctx,
		specification.ByID{ID: m.Id},
		specification.WithAuthor{},
		specification.WithChannel{},
	)
}

func (r *ChannelChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChannelChat, error) {
	var m model.ChannelChat
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChannelChatToEntity(&m), nil
}

func (r *ChannelChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChannelChat, error) {
	var models []*model.ChannelChat
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	chats := make([]*entity.ChannelChat, len(models))
	for i, m := range models {
		chats[i] = r.mapper.ChannelChatToEntity(m)
	}
	return chats, nil
}

func (r *ChannelChatRepositoryImpl) CountAfter(ctx context.Context, channelId uint, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ChannelChat{}).
		Where("channel_id = ? AND created_at > ?", channelId, after).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
