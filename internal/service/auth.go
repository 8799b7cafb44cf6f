package service

import (
	"github.com/palaver-dev/palaver/internal/domain"
	"github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/logger"
	"github.com/palaver-dev/palaver/internal/policy"
	"github.com/palaver-dev/palaver/internal/token"
)

type AuthService interface {
	Register(creds domain.Credentials) (domain.User, error)
	Login(creds domain.Credentials) (string, error)
	Resolve(subject domain.Username) (domain.User, error)
	Promote(actor domain.User, userId domain.UserId) (domain.User, error)
	Users(actor domain.User) ([]domain.User, error)
}

type Auth struct {
	storage   UserStorage
	hasher    Hasher
	tokens    token.Service
	validator CredentialsValidator
}

type UserStorage interface {
	CreateUser(username domain.Username, passHash string, admin bool) (domain.User, error)
	UserByUsername(username domain.Username) (domain.User, error)
	ListUsers() ([]domain.User, error)
	PromoteUser(id domain.UserId) (domain.User, error)
}

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type CredentialsValidator interface {
	Username(username string) error
	Password(password string) error
}

func NewAuth(storage UserStorage, hasher Hasher, tokens token.Service, validator CredentialsValidator) *Auth {
	return &Auth{storage: storage, hasher: hasher, tokens: tokens, validator: validator}
}

// Register creates a new account. The storage layer grants administrator
// status to the very first registrant; everyone after that starts plain.
func (a *Auth) Register(creds domain.Credentials) (domain.User, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return domain.User{}, err
	}

	passHash, err := a.hasher.Hash(creds.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user, err := a.storage.CreateUser(creds.Username, passHash, false)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login checks the credentials and returns an access token. Unknown user
// and wrong password produce the same response so usernames cannot be
// enumerated; the precise reason is logged only.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByUsername(creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Log.Debug("login rejected: unknown user", "username", creds.Username)
			return "", errors.Authentication("Invalid credentials")
		}
		return "", err
	}

	if !a.hasher.Verify(creds.Password, user.PassHash) {
		logger.Log.Debug("login rejected: wrong password", "user_id", user.Id)
		return "", errors.Authentication("Invalid credentials")
	}

	accessToken, err := a.tokens.Issue(user)
	if err != nil {
		logger.Log.Error("failed to create access token", "user_id", user.Id, "error", err)
		return "", err
	}
	return accessToken, nil
}

// Resolve turns a verified token subject into the current user record.
// A subject that no longer resolves is indistinguishable from an invalid
// token to the caller.
func (a *Auth) Resolve(subject domain.Username) (domain.User, error) {
	user, err := a.storage.UserByUsername(subject)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Log.Debug("token subject no longer resolves", "subject", subject)
			return domain.User{}, errors.Authentication("Invalid access token")
		}
		return domain.User{}, err
	}
	return user, nil
}

// Promote grants administrator status to the target user.
func (a *Auth) Promote(actor domain.User, userId domain.UserId) (domain.User, error) {
	if !policy.CanPromote(actor) {
		return domain.User{}, errors.Authorization("Access denied. Only for admin")
	}
	return a.storage.PromoteUser(userId)
}

func (a *Auth) Users(actor domain.User) ([]domain.User, error) {
	if !policy.CanPromote(actor) {
		return nil, errors.Authorization("Access denied. Only for admin")
	}
	return a.storage.ListUsers()
}
