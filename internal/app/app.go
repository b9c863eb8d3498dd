package app

import (
	"github.com/kappucitti/syncvote/internal/config"
	http_auth "github.com/kappucitti/syncvote/internal/delivery/http/auth"
	http_init "github.com/kappucitti/syncvote/internal/delivery/http/init"
	http_library "github.com/kappucitti/syncvote/internal/delivery/http/library"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	http_permission "github.com/kappucitti/syncvote/internal/delivery/http/permission"
	http_room "github.com/kappucitti/syncvote/internal/delivery/http/room"
	http_swagger "github.com/kappucitti/syncvote/internal/delivery/http/swagger"
	http_voting "github.com/kappucitti/syncvote/internal/delivery/http/voting"
	ws_room "github.com/kappucitti/syncvote/internal/delivery/ws/room"
	infra_pg_init "github.com/kappucitti/syncvote/internal/infra/postgres/init"
	infra_postgres_library "github.com/kappucitti/syncvote/internal/infra/postgres/library"
	infra_redis_init "github.com/kappucitti/syncvote/internal/infra/redis/init"
	infra_session_cache "github.com/kappucitti/syncvote/internal/infra/redis/session"
	service_auth "github.com/kappucitti/syncvote/internal/service/auth"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
	usecase_library "github.com/kappucitti/syncvote/internal/usecase/library"
	usecase_permission "github.com/kappucitti/syncvote/internal/usecase/permission"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
	usecase_vote "github.com/kappucitti/syncvote/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	registry := storage_registry.New()
	itemDirectory := infra_postgres_library.New(pgConn)

	roomUC := usecase_room.New(registry)
	permissionUC := usecase_permission.New(registry)
	libraryUC := usecase_library.New(registry, itemDirectory)

	hub := ws_room.NewHub(roomUC)
	go hub.Run()

	voteUC := usecase_vote.New(registry, itemDirectory, hub)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := service_auth.New(sessionCache, cfg.Auth.SessionTTL)
	authMiddleware := http_auth_middleware.New(authService)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(http_room.New(roomUC, permissionUC, hub, authMiddleware))
	controllerPool.Add(http_voting.New(roomUC, voteUC, permissionUC, hub, authMiddleware))
	controllerPool.Add(http_library.New(libraryUC, authMiddleware))
	controllerPool.Add(http_permission.New(permissionUC, authMiddleware))
	controllerPool.Add(ws_room.NewController(hub, roomUC, authMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
