package entity

import "time"

type Workspace struct {
	Id        uint
	Name      string
	Url       string
	CreatedAt time.Time
}
