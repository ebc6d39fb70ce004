package service

import (
	"context"
	"time"

	"workchat-be/internal/dto"
	"workchat-be/internal/entity"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/repository/contract"
	"workchat-be/internal/repository/memory"
	"workchat-be/internal/repository/specification"
	"workchat-be/internal/repository/unitofwork"
	"workchat-be/internal/websocket"
)

type IChannelService interface {
	GetWorkspaceChannels(ctx context.Context, url string, userId uint) ([]*dto.ChannelResponse, error)
	CreateWorkspaceChannel(ctx context.Context, url string, userId uint, req *dto.CreateChannelRequest) (*dto.CreateChannelResponse, error)
	GetWorkspaceChannel(ctx context.Context, url, name string) (*dto.ChannelResponse, error)
	GetWorkspaceChannelMembers(ctx context.Context, url, name string) ([]*dto.ChannelMemberResponse, error)
	AddWorkspaceChannelMember(ctx context.Context, url, name, email string) error
	GetWorkspaceChannelChats(ctx context.Context, url, name string, perPage, page int) ([]*dto.ChatResponse, error)
	GetChannelUnreadsCount(ctx context.Context, url, name string, after time.Time) (*dto.UnreadsResponse, error)
	AuthorizeSubscribe(ctx context.Context, url string, channelId, userId uint) (string, error)
}

type channelService struct {
	uowFactory     unitofwork.RepositoryFactory
	workspaceCache *memory.WorkspaceCache
}

func NewChannelService(uowFactory unitofwork.RepositoryFactory, workspaceCache *memory.WorkspaceCache) IChannelService {
	return &channelService{
		uowFactory:     uowFactory,
		workspaceCache: workspaceCache,
	}
}

// resolveWorkspace maps a workspace url to its row, via the memo cache.
func resolveWorkspace(ctx context.Context, cache *memory.WorkspaceCache, repo contract.WorkspaceRepository, url string) (*entity.Workspace, error) {
	if ws, found := cache.Get(url); found {
		return ws, nil
	}
	ws, err := repo.FindOne(ctx, specification.Filter("url", url))
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperror.NotFound("workspace")
	}
	cache.Set(ws)
	return ws, nil
}

func resolveChannel(ctx context.Context, repo contract.ChannelRepository, workspaceId uint, name string) (*entity.Channel, error) {
	channel, err := repo.FindOne(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ByName{Name: name},
	)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, apperror.NotFound("channel")
	}
	return channel, nil
}

func (s *channelService) GetWorkspaceChannels(ctx context.Context, url string, userId uint) ([]*dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channels, err := uow.ChannelRepository().FindAllForMember(ctx, ws.Id, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChannelResponse, len(channels))
	for i, channel := range channels {
		result[i] = toChannelResponse(channel)
	}
	return result, nil
}

// CreateWorkspaceChannel creates the channel and auto-joins the creator in
// one transaction; a channel without its creator's membership must not exist.
func (s *channelService) CreateWorkspaceChannel(ctx context.Context, url string, userId uint, req *dto.CreateChannelRequest) (*dto.CreateChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	channel := entity.Channel{
		Name:        req.Name,
		WorkspaceId: ws.Id,
	}
	if err := uow.ChannelRepository().Create(ctx, &channel); err != nil {
		return nil, err
	}

	member := entity.ChannelMember{
		ChannelId: channel.Id,
		UserId:    userId,
	}
	if err := uow.ChannelMemberRepository().Add(ctx, &member); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateChannelResponse{Id: channel.Id}, nil
}

func (s *channelService) GetWorkspaceChannel(ctx context.Context, url, name string) (*dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return nil, err
	}

	return toChannelResponse(channel), nil
}

func (s *channelService) GetWorkspaceChannelMembers(ctx context.Context, url, name string) ([]*dto.ChannelMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return nil, err
	}

	users, err := uow.ChannelMemberRepository().ResolveMembers(ctx, channel.Id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChannelMemberResponse, len(users))
	for i, user := range users {
		result[i] = &dto.ChannelMemberResponse{
			Id:       user.Id,
			Email:    user.Email,
			Nickname: user.Nickname,
		}
	}
	return result, nil
}

// AddWorkspaceChannelMember invites by email. The invitee lookup is scoped to
// the workspace, so an outsider's email reads as NotFound rather than leaking
// account existence.
func (s *channelService) AddWorkspaceChannelMember(ctx context.Context, url, name, email string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return err
	}

	user, err := uow.UserRepository().FindWorkspaceUserByEmail(ctx, ws.Id, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user")
	}

	member := entity.ChannelMember{
		ChannelId: channel.Id,
		UserId:    user.Id,
	}
	return uow.ChannelMemberRepository().Add(ctx, &member)
}

// GetWorkspaceChannelChats is the pagination engine: reverse-chronological
// pages, id as tiebreaker, authors denormalized. Read-only and replayable.
func (s *channelService) GetWorkspaceChannelChats(ctx context.Context, url, name string, perPage, page int) ([]*dto.ChatResponse, error) {
	if perPage <= 0 || page <= 0 {
		return nil, apperror.InvalidArgument("perPage and page must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return nil, err
	}

	chats, err := uow.ChannelChatRepository().FindAll(ctx,
		specification.ByChannelID{ChannelID: channel.Id},
		specification.WithAuthor{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.OrderBy{Field: "id", Desc: true},
		specification.Pagination{Limit: perPage, Offset: perPage * (page - 1)},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatResponse, len(chats))
	for i, chat := range chats {
		result[i] = toChatResponse(chat)
	}
	return result, nil
}

func (s *channelService) GetChannelUnreadsCount(ctx context.Context, url, name string, after time.Time) (*dto.UnreadsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return nil, err
	}

	count, err := uow.ChannelChatRepository().CountAfter(ctx, channel.Id, after)
	if err != nil {
		return nil, err
	}

	return &dto.UnreadsResponse{Count: count}, nil
}

// AuthorizeSubscribe gates live-delivery subscriptions: only members of the
// channel (scoped to the workspace) may join its room.
func (s *channelService) AuthorizeSubscribe(ctx context.Context, url string, channelId, userId uint) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return "", err
	}

	channel, err := uow.ChannelRepository().FindOne(ctx,
		specification.ByID{ID: channelId},
		specification.ByWorkspaceID{WorkspaceID: ws.Id},
	)
	if err != nil {
		return "", err
	}
	if channel == nil {
		return "", apperror.NotFound("channel")
	}

	ok, err := uow.ChannelMemberRepository().IsMember(ctx, channel.Id, userId)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.Unauthorized("not a channel member")
	}

	return websocket.RoomKey(ws.Url, channel.Id), nil
}

func toChannelResponse(channel *entity.Channel) *dto.ChannelResponse {
	return &dto.ChannelResponse{
		Id:          channel.Id,
		Name:        channel.Name,
		WorkspaceId: channel.WorkspaceId,
		CreatedAt:   channel.CreatedAt,
	}
}

func toChatResponse(chat *entity.ChannelChat) *dto.ChatResponse {
	res := &dto.ChatResponse{
		Id:        chat.Id,
		Content:   chat.Content,
		ChannelId: chat.ChannelId,
		UserId:    chat.UserId,
		CreatedAt: chat.CreatedAt,
	}
	if chat.User != nil {
		res.User = &dto.ChatAuthor{
			Id:       chat.User.Id,
			Email:    chat.User.Email,
			Nickname: chat.User.Nickname,
		}
	}
	if chat.Channel != nil {
		res.Channel = toChannelResponse(chat.Channel)
	}
	return res
}
