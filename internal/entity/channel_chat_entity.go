package entity

import "time"

// ChannelChat is a persisted chat line. User and Channel are denormalized on
// read so the same value serves both the history page and the live publish.
type ChannelChat struct {
	Id        uint
	ChannelId uint
	Channel   *Channel
	UserId    uint
	User      *User
	Content   string
	CreatedAt time.Time
}
