package domain

type (
	Username = string
	UserId   = int64

	ThreadTitle = string
	ThreadId    = int64

	Text    = string
	ReplyId = int64
)
