package api

import (
	"time"

	"github.com/palaver-dev/palaver/internal/domain"
)

// Request DTOs

type CreateReplyRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type EditReplyRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Response DTOs

type ReplyResponse struct {
	Id       domain.ReplyId  `json:"id"`
	ThreadId domain.ThreadId `json:"thread_id"`
	Text     domain.Text     `json:"text"`
	Created  time.Time       `json:"created"`
	AuthorId domain.UserId   `json:"user_id"`
	Edited   bool            `json:"edited"`
}

func NewReplyResponse(reply domain.Reply) ReplyResponse {
	return ReplyResponse{
		Id:       reply.Id,
		ThreadId: reply.ThreadId,
		Text:     reply.Text,
		Created:  reply.CreatedAt,
		AuthorId: reply.AuthorId,
		Edited:   reply.Edited,
	}
}

type RepliesResponse struct {
	Replies []ReplyResponse `json:"replies"`
}

func NewRepliesResponse(replies []domain.Reply) RepliesResponse {
	out := RepliesResponse{Replies: make([]ReplyResponse, 0, len(replies))}
	for _, reply := range replies {
		out.Replies = append(out.Replies, NewReplyResponse(reply))
	}
	return out
}
