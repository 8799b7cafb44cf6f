package service

import (
	"github.com/palaver-dev/palaver/internal/domain"
	"github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/policy"
	"github.com/palaver-dev/palaver/internal/sanitize"
)

type ReplyService interface {
	Create(author domain.User, threadId domain.ThreadId, text domain.Text) (domain.Reply, error)
	Get(id domain.ReplyId) (domain.Reply, error)
	List(threadId domain.ThreadId) ([]domain.Reply, error)
	Edit(actor domain.User, id domain.ReplyId, text domain.Text) (domain.Reply, error)
	Delete(actor domain.User, id domain.ReplyId) error
}

type Reply struct {
	storage   ReplyStorage
	validator ReplyValidator
}

type ReplyStorage interface {
	CreateReply(data domain.ReplyCreationData) (domain.Reply, error)
	GetReply(id domain.ReplyId) (domain.Reply, error)
	ListReplies(threadId domain.ThreadId) ([]domain.Reply, error)
	UpdateReply(id domain.ReplyId, authorId domain.UserId, text domain.Text) (domain.Reply, error)
	DeleteReply(id domain.ReplyId) error
}

type ReplyValidator interface {
	Text(text domain.Text) error
}

func NewReply(storage ReplyStorage, validator ReplyValidator) *Reply {
	return &Reply{storage: storage, validator: validator}
}

// Create persists a reply to an existing thread. The storage layer checks
// the parent thread inside the insert transaction, so a missing thread
// fails the whole operation and nothing is persisted.
func (r *Reply) Create(author domain.User, threadId domain.ThreadId, text domain.Text) (domain.Reply, error) {
	text, err := r.cleanInput(text)
	if err != nil {
		return domain.Reply{}, err
	}

	return r.storage.CreateReply(domain.ReplyCreationData{
		ThreadId: threadId,
		Text:     text,
		AuthorId: author.Id,
	})
}

func (r *Reply) Get(id domain.ReplyId) (domain.Reply, error) {
	return r.storage.GetReply(id)
}

func (r *Reply) List(threadId domain.ThreadId) ([]domain.Reply, error) {
	return r.storage.ListReplies(threadId)
}

func (r *Reply) Edit(actor domain.User, id domain.ReplyId, text domain.Text) (domain.Reply, error) {
	text, err := r.cleanInput(text)
	if err != nil {
		return domain.Reply{}, err
	}

	current, err := r.storage.GetReply(id)
	if err != nil {
		return domain.Reply{}, err
	}
	if !policy.CanEditReply(actor, current) {
		return domain.Reply{}, errors.Authorization("Only the author can edit this reply")
	}

	return r.storage.UpdateReply(id, actor.Id, text)
}

func (r *Reply) Delete(actor domain.User, id domain.ReplyId) error {
	if !policy.CanDelete(actor) {
		return errors.Authorization("Access denied. Only for admin")
	}
	return r.storage.DeleteReply(id)
}

func (r *Reply) cleanInput(text domain.Text) (domain.Text, error) {
	text = sanitize.Text(text)
	if err := r.validator.Text(text); err != nil {
		return "", err
	}
	return text, nil
}
