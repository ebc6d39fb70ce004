package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByChannelID struct {
	ChannelID uint
}

func (s ByChannelID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel_id = ?", s.ChannelID)
}

type ByWorkspaceID struct {
	WorkspaceID uint
}

func (s ByWorkspaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ?", s.WorkspaceID)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// CreatedAfter is a strict comparison: rows created exactly at After are
// excluded, which is what unread badges count on.
type CreatedAfter struct {
	After time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.After)
}

type WithAuthor struct{}

func (s WithAuthor) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("User")
}

type WithChannel struct{}

func (s WithChannel) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Channel").Preload("Channel.Workspace")
}
