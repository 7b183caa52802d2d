package user

import "time"

type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string // bcrypt hash, never serialized
	Role      string
	CreatedAt time.Time
}
