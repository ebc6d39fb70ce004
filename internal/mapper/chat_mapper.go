package mapper

import (
	"workchat-be/internal/entity"
	"workchat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) WorkspaceToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}
	return &entity.Workspace{
		Id:        w.Id,
		Name:      w.Name,
		Url:       w.Url,
		CreatedAt: w.CreatedAt,
	}
}

func (m *ChatMapper) UserToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.Id,
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}

func (m *ChatMapper) ChannelToEntity(c *model.Channel) *entity.Channel {
	if c == nil {
		return nil
	}
	e := &entity.Channel{
		Id:          c.Id,
		Name:        c.Name,
		WorkspaceId: c.WorkspaceId,
		CreatedAt:   c.CreatedAt,
	}
	if c.Workspace.Id != 0 {
		e.Workspace = m.WorkspaceToEntity(&c.Workspace)
	}
	return e
}

func (m *ChatMapper) ChannelToModel(c *entity.Channel) *model.Channel {
	if c == nil {
		return nil
	}
	return &model.Channel{
		Id:          c.Id,
		Name:        c.Name,
		WorkspaceId: c.WorkspaceId,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *ChatMapper) ChannelMemberToEntity(cm *model.ChannelMember) *entity.ChannelMember {
	if cm == nil {
		return nil
	}
	return &entity.ChannelMember{
		ChannelId: cm.ChannelId,
		UserId:    cm.UserId,
		CreatedAt: cm.CreatedAt,
	}
}

func (m *ChatMapper) ChannelChatToEntity(c *model.ChannelChat) *entity.ChannelChat {
	if c == nil {
		return nil
	}
	e := &entity.ChannelChat{
		Id:        c.Id,
		ChannelId: c.ChannelId,
		UserId:    c.UserId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User.Id != 0 {
		e.User = m.UserToEntity(&c.User)
	}
	if c.Channel.Id != 0 {
		e.Channel = m.ChannelToEntity(&c.Channel)
	}
	return e
}
