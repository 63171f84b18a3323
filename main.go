package main

import (
	"context"
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/biz/handler"
	"github.com/infravue/infravue/biz/middleware"
	"github.com/infravue/infravue/biz/router"
	"github.com/infravue/infravue/biz/service"
	"github.com/infravue/infravue/pkg/config"
	"github.com/infravue/infravue/pkg/database"
	"github.com/infravue/infravue/pkg/lock"
	"github.com/infravue/infravue/pkg/redis"
	"github.com/infravue/infravue/pkg/storage"
	"github.com/infravue/infravue/pkg/validator"
)

func main() {
	cfg := config.MustLoad("./config.yaml")

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Image{}); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("init redis: %v", err)
	}
	if rdb != nil {
		middleware.InitWriteLock(lock.New(rdb, "infravue:write_lock", 30*time.Second, 10*time.Second))
		log.Println("redis write lock enabled")
	}

	svc := service.NewService(db, store)
	defer svc.Close()

	if err := svc.SeedAdminUser(context.Background(), cfg.Seed); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	uploads := validator.NewUploadConfig(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	h.Use(middleware.Recovery())
	h.Use(middleware.CORS(&cfg.CORS))
	h.Use(middleware.Logging())
	h.Use(middleware.Auth())

	router.Register(h, handler.NewProjectHandler(svc), handler.NewAssetHandler(svc, uploads))

	h.Spin()
}
