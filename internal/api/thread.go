package api

import (
	"time"

	"github.com/palaver-dev/palaver/internal/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Text  string `json:"text" validate:"required,max=2000"`
}

type EditThreadRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Text  string `json:"text" validate:"required,max=2000"`
}

// Response DTOs

type ThreadResponse struct {
	Id       domain.ThreadId    `json:"id"`
	Title    domain.ThreadTitle `json:"title"`
	Text     domain.Text        `json:"text"`
	Created  time.Time          `json:"created"`
	AuthorId domain.UserId      `json:"user_id"`
	Edited   bool               `json:"edited"`
}

func NewThreadResponse(thread domain.Thread) ThreadResponse {
	return ThreadResponse{
		Id:       thread.Id,
		Title:    thread.Title,
		Text:     thread.Text,
		Created:  thread.CreatedAt,
		AuthorId: thread.AuthorId,
		Edited:   thread.Edited,
	}
}

type ThreadsResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

func NewThreadsResponse(threads []domain.Thread) ThreadsResponse {
	out := ThreadsResponse{Threads: make([]ThreadResponse, 0, len(threads))}
	for _, thread := range threads {
		out.Threads = append(out.Threads, NewThreadResponse(thread))
	}
	return out
}
