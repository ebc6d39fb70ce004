package model

import "time"

type Workspace struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Url       string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceMember scopes invite lookups: only workspace members can be added
// to a channel of that workspace.
type WorkspaceMember struct {
	WorkspaceId uint      `gorm:"primaryKey;autoIncrement:false"`
	UserId      uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}
