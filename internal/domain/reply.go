package domain

import "time"

type Reply struct {
	Id        ReplyId
	ThreadId  ThreadId
	Text      Text
	CreatedAt time.Time
	AuthorId  UserId
	Edited    bool
}

type ReplyCreationData struct {
	ThreadId ThreadId
	Text     Text
	AuthorId UserId
}
