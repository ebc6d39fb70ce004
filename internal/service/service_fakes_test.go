package service

import (
	"context"
	"fmt"
	"time"

	"workchat-be/internal/entity"
	"workchat-be/internal/pkg/apperror"
	"workchat-be/internal/repository/contract"
	"workchat-be/internal/repository/memory"
	"workchat-be/internal/repository/specification"
	"workchat-be/internal/repository/unitofwork"
	"workchat-be/pkg/events"
)

// fakeStore is a single in-memory backing store shared by all fake
// repositories of one test.
type fakeStore struct {
	workspace *entity.Workspace
	channels  []*entity.Channel
	members   map[string]struct{} // "<channelId>:<userId>"
	users     []*entity.User
	chats     []*entity.ChannelChat

	nextChatId uint
	clock      time.Time

	// failContent makes Append fail for chats carrying this exact content.
	failContent string

	workspaceLookups int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workspace:  &entity.Workspace{Id: 1, Name: "Acme", Url: "acme"},
		members:    make(map[string]struct{}),
		nextChatId: 1,
		clock:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func memberKey(channelId, userId uint) string {
	return fmt.Sprintf("%d:%d", channelId, userId)
}

func (s *fakeStore) addChannel(id uint, name string) *entity.Channel {
	ch := &entity.Channel{Id: id, Name: name, WorkspaceId: s.workspace.Id}
	s.channels = append(s.channels, ch)
	return ch
}

func (s *fakeStore) addUser(id uint, email, nickname string) *entity.User {
	u := &entity.User{Id: id, Email: email, Nickname: nickname}
	s.users = append(s.users, u)
	return u
}

func (s *fakeStore) addMember(channelId, userId uint) {
	s.members[memberKey(channelId, userId)] = struct{}{}
}

func (s *fakeStore) userByID(id uint) *entity.User {
	for _, u := range s.users {
		if u.Id == id {
			return u
		}
	}
	return nil
}

func (s *fakeStore) channelByID(id uint) *entity.Channel {
	for _, ch := range s.channels {
		if ch.Id == id {
			return ch
		}
	}
	return nil
}

// --- repositories ---

type fakeWorkspaceRepo struct{ s *fakeStore }

func (r *fakeWorkspaceRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Workspace, error) {
	r.s.workspaceLookups++
	for _, spec := range specs {
		if f, ok := spec.(specification.FilterBy); ok && f.Field == "url" {
			if r.s.workspace != nil && r.s.workspace.Url == f.Value {
				return r.s.workspace, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) IsMember(context.Context, uint, uint) (bool, error) {
	return true, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) FindOne(context.Context, ...specification.Specification) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindWorkspaceUserByEmail(_ context.Context, _ uint, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeChannelRepo struct{ s *fakeStore }

func (r *fakeChannelRepo) Create(_ context.Context, channel *entity.Channel) error {
	for _, existing := range r.s.channels {
		if existing.WorkspaceId == channel.WorkspaceId && existing.Name == channel.Name {
			return apperror.Conflict("channel name")
		}
	}
	channel.Id = uint(len(r.s.channels) + 1)
	r.s.channels = append(r.s.channels, channel)
	return nil
}

func (r *fakeChannelRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Channel, error) {
	for _, ch := range r.s.channels {
		if channelMatches(ch, specs) {
			return ch, nil
		}
	}
	return nil, nil
}

func channelMatches(ch *entity.Channel, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if ch.Id != sp.ID {
				return false
			}
		case specification.ByWorkspaceID:
			if ch.WorkspaceId != sp.WorkspaceID {
				return false
			}
		case specification.ByName:
			if ch.Name != sp.Name {
				return false
			}
		}
	}
	return true
}

func (r *fakeChannelRepo) FindAllForMember(_ context.Context, workspaceId, userId uint) ([]*entity.Channel, error) {
	var result []*entity.Channel
	for _, ch := range r.s.channels {
		if ch.WorkspaceId != workspaceId {
			continue
		}
		if _, ok := r.s.members[memberKey(ch.Id, userId)]; ok {
			result = append(result, ch)
		}
	}
	return result, nil
}

type fakeMemberRepo struct{ s *fakeStore }

func (r *fakeMemberRepo) Add(_ context.Context, member *entity.ChannelMember) error {
	key := memberKey(member.ChannelId, member.UserId)
	if _, ok := r.s.members[key]; ok {
		return apperror.Conflict("channel member")
	}
	r.s.members[key] = struct{}{}
	return nil
}

func (r *fakeMemberRepo) IsMember(_ context.Context, channelId, userId uint) (bool, error) {
	_, ok := r.s.members[memberKey(channelId, userId)]
	return ok, nil
}

func (r *fakeMemberRepo) ResolveMembers(_ context.Context, channelId uint) ([]*entity.User, error) {
	var result []*entity.User
	for _, u := range r.s.users {
		if _, ok := r.s.members[memberKey(channelId, u.Id)]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeMemberRepo) Remove(_ context.Context, channelId, userId uint) error {
	delete(r.s.members, memberKey(channelId, userId))
	return nil
}

type fakeChatRepo struct{ s *fakeStore }

func (r *fakeChatRepo) Append(_ context.Context, channelId, userId uint, content string) (*entity.ChannelChat, error) {
	if r.s.failContent != "" && content == r.s.failContent {
		return nil, fmt.Errorf("insert failed")
	}
	if r.s.channelByID(channelId) == nil {
		return nil, apperror.NotFound("channel")
	}

	chat := &entity.ChannelChat{
		Id:        r.s.nextChatId,
		ChannelId: channelId,
		Channel:   r.s.channelByID(channelId),
		UserId:    userId,
		User:      r.s.userByID(userId),
		Content:   content,
		CreatedAt: r.s.clock,
	}
	r.s.nextChatId++
	r.s.clock = r.s.clock.Add(time.Second)
	r.s.chats = append(r.s.chats, chat)
	return chat, nil
}

func (r *fakeChatRepo) FindOne(context.Context, ...specification.Specification) (*entity.ChannelChat, error) {
	return nil, nil
}

func (r *fakeChatRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChannelChat, error) {
	var channelId uint
	limit, offset := -1, 0
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByChannelID:
			channelId = sp.ChannelID
		case specification.Pagination:
			limit, offset = sp.Limit, sp.Offset
		}
	}

	var rows []*entity.ChannelChat
	for _, chat := range r.s.chats {
		if chat.ChannelId == channelId {
			rows = append(rows, chat)
		}
	}
	// Reverse chronological with id tiebreaker; the fake's clock is strictly
	// increasing so id order is equivalent.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeChatRepo) CountAfter(_ context.Context, channelId uint, after time.Time) (int64, error) {
	var count int64
	for _, chat := range r.s.chats {
		if chat.ChannelId == channelId && chat.CreatedAt.After(after) {
			count++
		}
	}
	return count, nil
}

// --- unit of work ---

type fakeUnitOfWork struct {
	s *fakeStore

	begun      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Begin(context.Context) error { u.begun = true; return nil }
func (u *fakeUnitOfWork) Commit() error               { u.committed = true; return nil }

func (u *fakeUnitOfWork) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUnitOfWork) WorkspaceRepository() contract.WorkspaceRepository {
	return &fakeWorkspaceRepo{s: u.s}
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{s: u.s}
}

func (u *fakeUnitOfWork) ChannelRepository() contract.ChannelRepository {
	return &fakeChannelRepo{s: u.s}
}

func (u *fakeUnitOfWork) ChannelMemberRepository() contract.ChannelMemberRepository {
	return &fakeMemberRepo{s: u.s}
}

func (u *fakeUnitOfWork) ChannelChatRepository() contract.ChannelChatRepository {
	return &fakeChatRepo{s: u.s}
}

type fakeFactory struct {
	s    *fakeStore
	last *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	f.last = &fakeUnitOfWork{s: f.s}
	return f.last
}

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// --- collaborators ---

type publishedRoomEvent struct {
	roomKey string
	event   string
	data    interface{}
}

type fakeRealtimePublisher struct {
	published []publishedRoomEvent
	err       error
}

func (p *fakeRealtimePublisher) PublishToRoom(_ context.Context, roomKey, event string, data interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedRoomEvent{roomKey: roomKey, event: event, data: data})
	return nil
}

type fakeEventBus struct {
	events []events.Event
	err    error
}

func (b *fakeEventBus) Publish(_ context.Context, event events.Event) error {
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestCache() *memory.WorkspaceCache {
	return memory.NewWorkspaceCache()
}
