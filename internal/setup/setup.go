package setup

import (
	"github.com/palaver-dev/palaver/internal/config"
	"github.com/palaver-dev/palaver/internal/handler"
	"github.com/palaver-dev/palaver/internal/middleware"
	"github.com/palaver-dev/palaver/internal/password"
	"github.com/palaver-dev/palaver/internal/service"
	"github.com/palaver-dev/palaver/internal/storage/pg"
	"github.com/palaver-dev/palaver/internal/token"
	"github.com/palaver-dev/palaver/internal/utils"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	hasher := password.New(cfg.Public.BcryptCost)
	tokens := token.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, hasher, tokens, &utils.CredentialsValidator{})
	thread := service.NewThread(storage, &utils.ThreadValidator{})
	reply := service.NewReply(storage, &utils.ReplyValidator{})

	h := handler.New(auth, thread, reply, storage)
	authMw := middleware.NewAuth(tokens, auth)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: authMw,
	}, nil
}
