package model

import "time"

// ChannelChat is the append-only chat log. Id and CreatedAt are assigned by
// the database on INSERT (sequence + CURRENT_TIMESTAMP), never client-side,
// so appends within a channel stay monotonic without application locking.
type ChannelChat struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	ChannelId uint      `gorm:"not null;index:idx_channel_chats_channel_created,priority:1"`
	Channel   Channel   `gorm:"foreignKey:ChannelId"`
	UserId    uint      `gorm:"not null"`
	User      User      `gorm:"foreignKey:UserId"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_channel_chats_channel_created,priority:2"`
}

func (ChannelChat) TableName() string {
	return "channel_chats"
}
