package entity

import "time"

type User struct {
	Id        uint
	Email     string
	Nickname  string
	CreatedAt time.Time
}
