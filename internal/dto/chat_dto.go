package dto

import "time"

type PostChatRequest struct {
	Content string `json:"content" validate:"required"`
}

// PostFilesRequest carries opaque content references produced by the upload
// collaborator; the chat core stores them verbatim.
type PostFilesRequest struct {
	Urls []string `json:"urls" validate:"required,min=1,dive,required"`
}

// ChatResponse is the canonical shape of a persisted chat line, identical on
// the history page and on the live websocket frame.
type ChatResponse struct {
	Id        uint             `json:"id"`
	Content   string           `json:"content"`
	ChannelId uint             `json:"channel_id"`
	UserId    uint             `json:"user_id"`
	User      *ChatAuthor      `json:"User,omitempty"`
	Channel   *ChannelResponse `json:"Channel,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type ChatAuthor struct {
	Id       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type UnreadsResponse struct {
	Count int64 `json:"count"`
}
