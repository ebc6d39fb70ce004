package service

import (
	"context"
	"errors"
	"time"

	"workchat-be/internal/dto"
	"workchat-be/internal/entity"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/pkg/logger"
	"workchat-be/internal/repository/memory"
	"workchat-be/internal/repository/unitofwork"
	"workchat-be/internal/websocket"
	"workchat-be/pkg/events"
)

// IChatService is the broadcast coordinator. A post runs
// Received -> Authorized -> Appended -> Published, with an early exit at the
// authorization gate; nothing is published unless the append is durable.
type IChatService interface {
	PostChat(ctx context.Context, url, name string, userId uint, req *dto.PostChatRequest) (*dto.ChatResponse, error)
	PostFiles(ctx context.Context, url, name string, userId uint, req *dto.PostFilesRequest) ([]*dto.ChatResponse, error)
}

// DomainEventPublisher mirrors successful posts onto the event bus; nil-safe
// and best-effort at the call sites.
type DomainEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	workspaceCache *memory.WorkspaceCache
	realtime       IRealtimePublisher
	eventBus       DomainEventPublisher
	appendTimeout  time.Duration
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	workspaceCache *memory.WorkspaceCache,
	realtime IRealtimePublisher,
	eventBus DomainEventPublisher,
	appendTimeout time.Duration,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		workspaceCache: workspaceCache,
		realtime:       realtime,
		eventBus:       eventBus,
		appendTimeout:  appendTimeout,
		logger:         log,
	}
}

func (s *chatService) PostChat(ctx context.Context, url, name string, userId uint, req *dto.PostChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	channel, err := s.authorize(ctx, uow, url, name, userId)
	if err != nil {
		return nil, err
	}

	chat, err := s.append(ctx, uow, channel.Id, userId, req.Content)
	if err != nil {
		return nil, err
	}

	res := toChatResponse(chat)
	s.publish(ctx, url, channel.Id, userId, res)
	return res, nil
}

// PostFiles appends one chat per content reference. Items are independent
// units of work in submission order: a failed item is logged and skipped,
// later items still go through.
func (s *chatService) PostFiles(ctx context.Context, url, name string, userId uint, req *dto.PostFilesRequest) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	channel, err := s.authorize(ctx, uow, url, name, userId)
	if err != nil {
		return nil, err
	}

	var lastErr error
	result := make([]*dto.ChatResponse, 0, len(req.Urls))
	for _, contentRef := range req.Urls {
		chat, err := s.append(ctx, uow, channel.Id, userId, contentRef)
		if err != nil {
			s.logger.Error("ChatService", "File chat append failed", map[string]interface{}{
				"channel_id": channel.Id, "user_id": userId, "error": err.Error(),
			})
			lastErr = err
			continue
		}
		res := toChatResponse(chat)
		s.publish(ctx, url, channel.Id, userId, res)
		result = append(result, res)
	}

	if len(result) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return result, nil
}

// authorize resolves the target channel and verifies membership explicitly,
// so the coordinator stays safe when reached from a new entry point.
func (s *chatService) authorize(ctx context.Context, uow unitofwork.UnitOfWork, url, name string, userId uint) (*entity.Channel, error) {
	ws, err := resolveWorkspace(ctx, s.workspaceCache, uow.WorkspaceRepository(), url)
	if err != nil {
		return nil, err
	}

	channel, err := resolveChannel(ctx, uow.ChannelRepository(), ws.Id, name)
	if err != nil {
		return nil, err
	}

	ok, err := uow.ChannelMemberRepository().IsMember(ctx, channel.Id, userId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Unauthorized("not a channel member")
	}

	return channel, nil
}

// append runs the durable insert under a bounded timeout. Store failures and
// expiry surface as StoreUnavailable; taxonomy errors pass through.
func (s *chatService) append(ctx context.Context, uow unitofwork.UnitOfWork, channelId, userId uint, content string) (*entity.ChannelChat, error) {
	actx, cancel := context.WithTimeout(ctx, s.appendTimeout)
	defer cancel()

	chat, err := uow.ChannelChatRepository().Append(actx, channelId, userId, content)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, apperror.StoreUnavailable(err)
	}
	if chat == nil {
		// The insert committed but the canonical row vanished; treat it as a
		// store fault rather than inventing a partial response.
		return nil, apperror.StoreUnavailable(errors.New("appended chat not readable"))
	}
	return chat, nil
}

// publish fans the canonical chat out to the room and mirrors a domain event.
// Fire-and-forget: the caller already has its durable result, so failures
// here are logged and swallowed.
func (s *chatService) publish(ctx context.Context, url string, channelId, userId uint, res *dto.ChatResponse) {
	roomKey := websocket.RoomKey(url, channelId)
	if err := s.realtime.PublishToRoom(ctx, roomKey, websocket.EventMessage, res); err != nil {
		s.logger.Error("ChatService", "Room publish failed", map[string]interface{}{
			"room": roomKey, "chat_id": res.Id, "error": err.Error(),
		})
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.ChatPosted(url, channelId, res.Id, userId)); err != nil {
			s.logger.Warn("ChatService", "Domain event publish failed", map[string]interface{}{
				"chat_id": res.Id, "error": err.Error(),
			})
		}
	}
}
