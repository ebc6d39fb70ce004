package integration

import (
	"context"
	"log"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"workchat-be/internal/entity"
	"workchat-be/internal/model"
	"workchat-be/internal/repository/specification"
	"workchat-be/internal/repository/unitofwork"
	"workchat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	return db
}

// seedChannel creates an isolated workspace/user/channel fixture and returns
// the rows. Names are uuid-suffixed so runs never collide.
func seedChannel(t *testing.T, db *gorm.DB) (*model.Workspace, *model.User, *model.Channel) {
	t.Helper()
	suffix := uuid.NewString()

	ws := &model.Workspace{Name: "it-" + suffix, Url: "it-" + suffix}
	require.NoError(t, db.Create(ws).Error)
	t.Cleanup(func() { db.Delete(ws) })

	user := &model.User{Email: "it-" + suffix + "@example.com", Nickname: "it-user"}
	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() { db.Delete(user) })

	require.NoError(t, db.Create(&model.WorkspaceMember{WorkspaceId: ws.Id, UserId: user.Id}).Error)
	t.Cleanup(func() { db.Where("workspace_id = ?", ws.Id).Delete(&model.WorkspaceMember{}) })

	channel := &model.Channel{Name: "it-" + suffix, WorkspaceId: ws.Id}
	require.NoError(t, db.Create(channel).Error)
	t.Cleanup(func() {
		db.Where("channel_id = ?", channel.Id).Delete(&model.ChannelChat{})
		db.Where("channel_id = ?", channel.Id).Delete(&model.ChannelMember{})
		db.Delete(channel)
	})

	require.NoError(t, db.Create(&model.ChannelMember{ChannelId: channel.Id, UserId: user.Id}).Error)

	return ws, user, channel
}

func TestChatLogAppendAndHistory(t *testing.T) {
	db := openTestDB(t)
	_, user, channel := seedChannel(t, db)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	chats := uow.ChannelChatRepository()
	ctx := context.Background()

	t.Run("append assigns id and timestamp in the store", func(t *testing.T) {
		chat, err := chats.Append(ctx, channel.Id, user.Id, "first")
		require.NoError(t, err)
		require.NotNil(t, chat)

		assert.NotZero(t, chat.Id)
		assert.False(t, chat.CreatedAt.IsZero())
		require.NotNil(t, chat.User)
		assert.Equal(t, user.Email, chat.User.Email)
		require.NotNil(t, chat.Channel)
		assert.Equal(t, channel.Name, chat.Channel.Name)
	})

	t.Run("ids stay monotonic across appends", func(t *testing.T) {
		var lastId uint
		for i := 0; i < 5; i++ {
			chat, err := chats.Append(ctx, channel.Id, user.Id, "msg")
			require.NoError(t, err)
			assert.Greater(t, chat.Id, lastId)
			lastId = chat.Id
		}
	})

	t.Run("concurrent appends stay distinct and ordered", func(t *testing.T) {
		const workers, perWorker = 10, 5

		results := make(chan *entity.ChannelChat, workers*perWorker)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					chat, err := chats.Append(ctx, channel.Id, user.Id, "concurrent")
					assert.NoError(t, err)
					if chat != nil {
						results <- chat
					}
				}
			}()
		}
		wg.Wait()
		close(results)

		var appended []*entity.ChannelChat
		for chat := range results {
			appended = append(appended, chat)
		}
		require.Len(t, appended, workers*perWorker)

		// In id order: every id unique, timestamps never step backwards.
		sort.Slice(appended, func(i, j int) bool { return appended[i].Id < appended[j].Id })
		for i, chat := range appended {
			if i == 0 {
				continue
			}
			assert.NotEqual(t, appended[i-1].Id, chat.Id, "chat id assigned twice")
			assert.False(t, chat.CreatedAt.Before(appended[i-1].CreatedAt),
				"timestamp of chat %d precedes chat %d", chat.Id, appended[i-1].Id)
		}
	})

	t.Run("append to missing channel fails without a row", func(t *testing.T) {
		_, err := chats.Append(ctx, channel.Id+100000, user.Id, "orphan")
		assert.Error(t, err)
	})

	t.Run("history pages are reverse chronological and disjoint", func(t *testing.T) {
		history := func(perPage, page int) []uint {
			rows, err := chats.FindAll(ctx,
				specification.ByChannelID{ChannelID: channel.Id},
				specification.WithAuthor{},
				specification.OrderBy{Field: "created_at", Desc: true},
				specification.OrderBy{Field: "id", Desc: true},
				specification.Pagination{Limit: perPage, Offset: perPage * (page - 1)},
			)
			require.NoError(t, err)
			ids := make([]uint, len(rows))
			for i, row := range rows {
				ids[i] = row.Id
			}
			return ids
		}

		page1 := history(4, 1)
		page2 := history(4, 2)
		require.Len(t, page1, 4)

		seen := map[uint]bool{}
		prev := uint(0)
		for _, id := range append(page1, page2...) {
			assert.False(t, seen[id], "chat %d appeared twice", id)
			seen[id] = true
			if prev != 0 {
				assert.Less(t, id, prev, "ids must descend across pages")
			}
			prev = id
		}
	})

	t.Run("unreads count strictly after the cursor", func(t *testing.T) {
		before, err := chats.CountAfter(ctx, channel.Id, time.Time{})
		require.NoError(t, err)

		cursor, err := chats.Append(ctx, channel.Id, user.Id, "cursor")
		require.NoError(t, err)

		_, err = chats.Append(ctx, channel.Id, user.Id, "unread")
		require.NoError(t, err)

		count, err := chats.CountAfter(ctx, channel.Id, cursor.CreatedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		total, err := chats.CountAfter(ctx, channel.Id, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, before+2, total)
	})
}

func TestMembershipStore(t *testing.T) {
	db := openTestDB(t)
	ws, user, channel := seedChannel(t, db)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	ctx := context.Background()

	t.Run("membership is per channel", func(t *testing.T) {
		ok, err := uow.ChannelMemberRepository().IsMember(ctx, channel.Id, user.Id)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = uow.ChannelMemberRepository().IsMember(ctx, channel.Id, user.Id+100000)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("member listing resolves users", func(t *testing.T) {
		users, err := uow.ChannelMemberRepository().ResolveMembers(ctx, channel.Id)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, user.Email, users[0].Email)
	})

	t.Run("workspace-scoped email lookup", func(t *testing.T) {
		found, err := uow.UserRepository().FindWorkspaceUserByEmail(ctx, ws.Id, user.Email)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.Id, found.Id)

		missing, err := uow.UserRepository().FindWorkspaceUserByEmail(ctx, ws.Id, "outsider@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
