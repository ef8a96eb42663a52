package main

import (
	"context"

	"github.com/hoopboard/hoopboard/board"
	"github.com/hoopboard/hoopboard/config"
	"github.com/hoopboard/hoopboard/models"
	"github.com/hoopboard/hoopboard/routes"
	"github.com/hoopboard/hoopboard/store"
	"github.com/hoopboard/hoopboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	kv := store.NewFileStore(cfg.DataDir)
	identity := store.NewIdentityProvider(kv).Identity()
	likes := store.NewLikeRegistry(kv)
	local := store.NewLocalStore(kv, utils.Sugar)

	var remote *store.RemoteStore
	if cfg.RemoteEnabled {
		db, err := config.InitDatabase(&models.Post{}, &models.Comment{})
		if err != nil {
			utils.Sugar.Warnf("database unavailable, running on local snapshots: %v", err)
		} else {
			remote = store.NewRemoteStore(db, utils.GetRedis(), likes, utils.Sugar)
		}
	}

	ctx := context.Background()
	selected := board.Select(ctx, remote, local)
	var fallback store.Store
	if selected.Mode() == store.ModeRemote {
		fallback = local
	}
	b := board.New(selected, fallback, likes, identity, utils.Sugar)
	utils.Sugar.Infof("board ready: mode=%s identity=%s", b.Mode(), identity)

	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	feed, err := b.Feed(feedCtx, nil)
	if err != nil {
		utils.Sugar.Fatalf("feed init failed: %v", err)
	}
	defer feed.Close()

	r := routes.SetupRouter(b, feed)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
