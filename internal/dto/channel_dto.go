package dto

import "time"

type CreateChannelRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateChannelResponse struct {
	Id uint `json:"id"`
}

type ChannelResponse struct {
	Id          uint      `json:"id"`
	Name        string    `json:"name"`
	WorkspaceId uint      `json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddChannelMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChannelMemberResponse struct {
	Id       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
