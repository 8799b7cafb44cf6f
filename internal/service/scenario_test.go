package service

import (
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palaver-dev/palaver/internal/domain"
	internal_errors "github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/password"
	"github.com/palaver-dev/palaver/internal/token"
	"github.com/palaver-dev/palaver/internal/utils"
)

// memoryStore is an in-memory stand-in for the pg storage, mirroring its
// semantics: first-registrant admin grant, duplicate username conflict,
// parent-thread check on reply creation and cascading thread deletion.
type memoryStore struct {
	mu      sync.Mutex
	users   map[domain.UserId]domain.User
	threads map[domain.ThreadId]domain.Thread
	replies map[domain.ReplyId]domain.Reply
	nextId  int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:   make(map[domain.UserId]domain.User),
		threads: make(map[domain.ThreadId]domain.Thread),
		replies: make(map[domain.ReplyId]domain.Reply),
	}
}

func (s *memoryStore) id() int64 {
	s.nextId++
	return s.nextId
}

func (s *memoryStore) CreateUser(username domain.Username, passHash string, admin bool) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return domain.User{}, internal_errors.Conflict("Username already taken")
		}
	}
	user := domain.User{Id: s.id(), Username: username, PassHash: passHash, Admin: admin || len(s.users) == 0}
	s.users[user.Id] = user
	return user, nil
}

func (s *memoryStore) UserByUsername(username domain.Username) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, internal_errors.NotFound("User not found")
}

func (s *memoryStore) ListUsers() ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (s *memoryStore) PromoteUser(id domain.UserId) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, internal_errors.NotFound("User not found")
	}
	user.Admin = true
	s.users[id] = user
	return user, nil
}

func (s *memoryStore) CreateThread(data domain.ThreadCreationData) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread := domain.Thread{
		Id: s.id(), Title: data.Title, Text: data.Text,
		CreatedAt: time.Now().UTC(), AuthorId: data.AuthorId,
	}
	s.threads[thread.Id] = thread
	return thread, nil
}

func (s *memoryStore) GetThread(id domain.ThreadId) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.threads[id]; ok {
		return t, nil
	}
	return domain.Thread{}, internal_errors.NotFound("Thread not found")
}

func (s *memoryStore) ListThreads() ([]domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	threads := make([]domain.Thread, 0, len(s.threads))
	for _, t := range s.threads {
		threads = append(threads, t)
	}
	sort.Slice(threads, func(i, j int) bool { return threads[i].Id < threads[j].Id })
	return threads, nil
}

func (s *memoryStore) UpdateThread(id domain.ThreadId, authorId domain.UserId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[id]
	if !ok || thread.AuthorId != authorId {
		return domain.Thread{}, internal_errors.NotFound("Thread not found")
	}
	thread.Title, thread.Text, thread.Edited = title, text, true
	s.threads[id] = thread
	return thread, nil
}

func (s *memoryStore) DeleteThread(id domain.ThreadId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[id]; !ok {
		return internal_errors.NotFound("Thread not found")
	}
	for replyId, reply := range s.replies {
		if reply.ThreadId == id {
			delete(s.replies, replyId)
		}
	}
	delete(s.threads, id)
	return nil
}

func (s *memoryStore) CreateReply(data domain.ReplyCreationData) (domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[data.ThreadId]; !ok {
		return domain.Reply{}, internal_errors.NotFound("Thread not found")
	}
	reply := domain.Reply{
		Id: s.id(), ThreadId: data.ThreadId, Text: data.Text,
		CreatedAt: time.Now().UTC(), AuthorId: data.AuthorId,
	}
	s.replies[reply.Id] = reply
	return reply, nil
}

func (s *memoryStore) GetReply(id domain.ReplyId) (domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.replies[id]; ok {
		return r, nil
	}
	return domain.Reply{}, internal_errors.NotFound("Reply not found")
}

func (s *memoryStore) ListReplies(threadId domain.ThreadId) ([]domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[threadId]; !ok {
		return nil, internal_errors.NotFound("Thread not found")
	}
	var replies []domain.Reply
	for _, r := range s.replies {
		if r.ThreadId == threadId {
			replies = append(replies, r)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].Id < replies[j].Id })
	return replies, nil
}

func (s *memoryStore) UpdateReply(id domain.ReplyId, authorId domain.UserId, text domain.Text) (domain.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply, ok := s.replies[id]
	if !ok || reply.AuthorId != authorId {
		return domain.Reply{}, internal_errors.NotFound("Reply not found")
	}
	reply.Text, reply.Edited = text, true
	s.replies[id] = reply
	return reply, nil
}

func (s *memoryStore) DeleteReply(id domain.ReplyId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.replies[id]; !ok {
		return internal_errors.NotFound("Reply not found")
	}
	delete(s.replies, id)
	return nil
}

// TestForumLifecycle runs the full register/post/moderate flow through the
// real services against the in-memory store.
func TestForumLifecycle(t *testing.T) {
	store := newMemoryStore()
	tokens := token.New("testJwtKey", 10*time.Minute)
	auth := NewAuth(store, password.New(4), tokens, &utils.CredentialsValidator{})
	threads := NewThread(store, &utils.ThreadValidator{})
	replies := NewReply(store, &utils.ReplyValidator{})

	// First registrant becomes admin, second does not
	alice, err := auth.Register(domain.Credentials{Username: "alice", Password: "pw12345"})
	require.NoError(t, err)
	assert.True(t, alice.Admin)

	bob, err := auth.Register(domain.Credentials{Username: "bob", Password: "pw67890"})
	require.NoError(t, err)
	assert.False(t, bob.Admin)

	// Login round-trips through the real token service
	accessToken, err := auth.Login(domain.Credentials{Username: "alice", Password: "pw12345"})
	require.NoError(t, err)
	claims, err := tokens.Verify(accessToken)
	require.NoError(t, err)
	resolved, err := auth.Resolve(claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, alice.Id, resolved.Id)

	// Alice opens a thread
	thread, err := threads.Create(alice, "Hi", "Hello")
	require.NoError(t, err)
	assert.Equal(t, alice.Id, thread.AuthorId)
	assert.False(t, thread.Edited)

	// Bob may not edit it
	_, err = threads.Edit(bob, thread.Id, "Hijacked", "Hello")
	assert.Equal(t, http.StatusForbidden, internal_errors.StatusCode(err))

	// But bob can reply
	reply, err := replies.Create(bob, thread.Id, "Hey")
	require.NoError(t, err)
	assert.Equal(t, bob.Id, reply.AuthorId)

	// A reply against a nonexistent thread is rejected and not persisted
	_, err = replies.Create(bob, 9999, "Hey")
	assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))

	// Bob cannot delete the thread, alice (admin) can
	err = threads.Delete(bob, thread.Id)
	assert.Equal(t, http.StatusForbidden, internal_errors.StatusCode(err))
	require.NoError(t, threads.Delete(alice, thread.Id))

	// The cascade removed bob's reply too
	_, err = replies.Get(reply.Id)
	assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))

	// Promotion: alice promotes bob, who then gains moderation rights
	promoted, err := auth.Promote(alice, bob.Id)
	require.NoError(t, err)
	assert.True(t, promoted.Admin)
}
