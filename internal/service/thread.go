package service

import (
	"github.com/palaver-dev/palaver/internal/domain"
	"github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/policy"
	"github.com/palaver-dev/palaver/internal/sanitize"
)

type ThreadService interface {
	Create(author domain.User, title domain.ThreadTitle, text domain.Text) (domain.Thread, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	List() ([]domain.Thread, error)
	Edit(actor domain.User, id domain.ThreadId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error)
	Delete(actor domain.User, id domain.ThreadId) error
}

type Thread struct {
	storage   ThreadStorage
	validator ThreadValidator
}

type ThreadStorage interface {
	CreateThread(data domain.ThreadCreationData) (domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads() ([]domain.Thread, error)
	UpdateThread(id domain.ThreadId, authorId domain.UserId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error)
	DeleteThread(id domain.ThreadId) error
}

type ThreadValidator interface {
	Title(title domain.ThreadTitle) error
	Text(text domain.Text) error
}

func NewThread(storage ThreadStorage, validator ThreadValidator) *Thread {
	return &Thread{storage: storage, validator: validator}
}

func (t *Thread) Create(author domain.User, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	title, text, err := t.cleanInput(title, text)
	if err != nil {
		return domain.Thread{}, err
	}

	return t.storage.CreateThread(domain.ThreadCreationData{
		Title:    title,
		Text:     text,
		AuthorId: author.Id,
	})
}

func (t *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return t.storage.GetThread(id)
}

func (t *Thread) List() ([]domain.Thread, error) {
	return t.storage.ListThreads()
}

// Edit re-fetches the thread and checks ownership against the current
// record before writing. The update itself is conditional on the author id
// so a concurrent delete cannot resurrect the row.
func (t *Thread) Edit(actor domain.User, id domain.ThreadId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	title, text, err := t.cleanInput(title, text)
	if err != nil {
		return domain.Thread{}, err
	}

	current, err := t.storage.GetThread(id)
	if err != nil {
		return domain.Thread{}, err
	}
	if !policy.CanEditThread(actor, current) {
		return domain.Thread{}, errors.Authorization("Only the author can edit this thread")
	}

	return t.storage.UpdateThread(id, actor.Id, title, text)
}

func (t *Thread) Delete(actor domain.User, id domain.ThreadId) error {
	if !policy.CanDelete(actor) {
		return errors.Authorization("Access denied. Only for admin")
	}
	return t.storage.DeleteThread(id)
}

func (t *Thread) cleanInput(title domain.ThreadTitle, text domain.Text) (domain.ThreadTitle, domain.Text, error) {
	title = sanitize.Text(title)
	text = sanitize.Text(text)

	if err := t.validator.Title(title); err != nil {
		return "", "", err
	}
	if err := t.validator.Text(text); err != nil {
		return "", "", err
	}
	return title, text, nil
}
