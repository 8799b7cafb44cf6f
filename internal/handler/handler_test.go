package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/palaver-dev/palaver/internal/domain"
)

// Service mocks with overridable behavior per test.

type MockAuthService struct {
	RegisterFunc func(creds domain.Credentials) (domain.User, error)
	LoginFunc    func(creds domain.Credentials) (string, error)
	ResolveFunc  func(subject domain.Username) (domain.User, error)
	PromoteFunc  func(actor domain.User, userId domain.UserId) (domain.User, error)
	UsersFunc    func(actor domain.User) ([]domain.User, error)
}

func (m *MockAuthService) Register(creds domain.Credentials) (domain.User, error) {
	return m.RegisterFunc(creds)
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	return m.LoginFunc(creds)
}

func (m *MockAuthService) Resolve(subject domain.Username) (domain.User, error) {
	return m.ResolveFunc(subject)
}

func (m *MockAuthService) Promote(actor domain.User, userId domain.UserId) (domain.User, error) {
	return m.PromoteFunc(actor, userId)
}

func (m *MockAuthService) Users(actor domain.User) ([]domain.User, error) {
	return m.UsersFunc(actor)
}

type MockThreadService struct {
	CreateFunc func(author domain.User, title domain.ThreadTitle, text domain.Text) (domain.Thread, error)
	GetFunc    func(id domain.ThreadId) (domain.Thread, error)
	ListFunc   func() ([]domain.Thread, error)
	EditFunc   func(actor domain.User, id domain.ThreadId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error)
	DeleteFunc func(actor domain.User, id domain.ThreadId) error
}

func (m *MockThreadService) Create(author domain.User, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	return m.CreateFunc(author, title, text)
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.Thread, error) {
	return m.GetFunc(id)
}

func (m *MockThreadService) List() ([]domain.Thread, error) {
	return m.ListFunc()
}

func (m *MockThreadService) Edit(actor domain.User, id domain.ThreadId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	return m.EditFunc(actor, id, title, text)
}

func (m *MockThreadService) Delete(actor domain.User, id domain.ThreadId) error {
	return m.DeleteFunc(actor, id)
}

type MockReplyService struct {
	CreateFunc func(author domain.User, threadId domain.ThreadId, text domain.Text) (domain.Reply, error)
	GetFunc    func(id domain.ReplyId) (domain.Reply, error)
	ListFunc   func(threadId domain.ThreadId) ([]domain.Reply, error)
	EditFunc   func(actor domain.User, id domain.ReplyId, text domain.Text) (domain.Reply, error)
	DeleteFunc func(actor domain.User, id domain.ReplyId) error
}

func (m *MockReplyService) Create(author domain.User, threadId domain.ThreadId, text domain.Text) (domain.Reply, error) {
	return m.CreateFunc(author, threadId, text)
}

func (m *MockReplyService) Get(id domain.ReplyId) (domain.Reply, error) {
	return m.GetFunc(id)
}

func (m *MockReplyService) List(threadId domain.ThreadId) ([]domain.Reply, error) {
	return m.ListFunc(threadId)
}

func (m *MockReplyService) Edit(actor domain.User, id domain.ReplyId, text domain.Text) (domain.Reply, error) {
	return m.EditFunc(actor, id, text)
}

func (m *MockReplyService) Delete(actor domain.User, id domain.ReplyId) error {
	return m.DeleteFunc(actor, id)
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// newTestRouter mounts the handler on the same routes the real router uses,
// minus the auth middleware: tests inject the acting user directly into the
// request context.
func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Get("/threads", h.ListThreads)
		r.Post("/threads", h.CreateThread)
		r.Get("/threads/{thread}", h.GetThread)
		r.Put("/threads/{thread}", h.EditThread)
		r.Get("/threads/{thread}/replies", h.ListReplies)
		r.Post("/threads/{thread}/replies", h.CreateReply)
		r.Get("/replies/{reply}", h.GetReply)
		r.Put("/replies/{reply}", h.EditReply)
		r.Route("/admin", func(r chi.Router) {
			r.Delete("/threads/{thread}", h.DeleteThread)
			r.Delete("/replies/{reply}", h.DeleteReply)
			r.Post("/users/{user}/promote", h.PromoteUser)
			r.Get("/users", h.ListUsers)
		})
	})
	return r
}
