package entity

import "time"

type Channel struct {
	Id          uint
	Name        string
	WorkspaceId uint
	Workspace   *Workspace
	CreatedAt   time.Time
}

type ChannelMember struct {
	ChannelId uint
	UserId    uint
	CreatedAt time.Time
}
