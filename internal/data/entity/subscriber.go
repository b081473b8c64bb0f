package entity

import "time"

type Subscriber struct {
	Base
	Email          string     `db:"email"`
	IsActive       bool       `db:"is_active"`
	SubscribedAt   time.Time  `db:"subscribed_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at"`
}
