package domain

type User struct {
	Id       UserId
	Username Username
	PassHash string
	Admin    bool
}

type Credentials struct {
	Username Username
	Password string
}
