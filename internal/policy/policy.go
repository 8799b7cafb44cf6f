// Package policy holds the authorization decision functions. They are pure:
// no storage access, no side effects. Callers must pass the current stored
// record, re-fetched at decision time, never a copy captured earlier in the
// request.
package policy

import "github.com/palaver-dev/palaver/internal/domain"

func CanEditThread(user domain.User, thread domain.Thread) bool {
	return user.Id == thread.AuthorId
}

func CanEditReply(user domain.User, reply domain.Reply) bool {
	return user.Id == reply.AuthorId
}

func CanDelete(user domain.User) bool {
	return user.Admin
}

func CanPromote(user domain.User) bool {
	return user.Admin
}
