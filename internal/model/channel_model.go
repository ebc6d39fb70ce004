package model

import "time"

type Channel struct {
	Id          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_channels_workspace_name,priority:2"`
	WorkspaceId uint      `gorm:"not null;uniqueIndex:idx_channels_workspace_name,priority:1"`
	Workspace   Workspace `gorm:"foreignKey:WorkspaceId"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Channel) TableName() string {
	return "channels"
}

// ChannelMember is the (channel, user) authorization relation. The composite
// primary key doubles as the uniqueness guarantee for the pair.
type ChannelMember struct {
	ChannelId uint      `gorm:"primaryKey;autoIncrement:false"`
	UserId    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ChannelMember) TableName() string {
	return "channel_members"
}
