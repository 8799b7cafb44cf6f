package domain

import "time"

type Thread struct {
	Id        ThreadId
	Title     ThreadTitle
	Text      Text
	CreatedAt time.Time
	AuthorId  UserId
	Edited    bool
}

// ThreadCreationData is what the caller supplies; id and timestamp are
// assigned by storage.
type ThreadCreationData struct {
	Title    ThreadTitle
	Text     Text
	AuthorId UserId
}
