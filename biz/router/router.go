package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/infravue/infravue/biz/handler"
	"github.com/infravue/infravue/biz/middleware"
)

// Register configures the HTTP routes for the project and image APIs.
// Write endpoints additionally pass through the global write lock when
// it is enabled.
func Register(r *server.Hertz, projects *handler.ProjectHandler, assets *handler.AssetHandler) {
	r.GET("/ping", handler.Ping)

	v1 := r.Group("/api/v1", middleware.RequireAuth())

	v1.GET("/dashboard", projects.Dashboard)

	v1.POST("/projects", withWriteLock(projects.Create)...)
	v1.GET("/projects", projects.List)
	v1.DELETE("/projects/:projectID", withWriteLock(projects.Delete)...)

	v1.POST("/projects/:projectID/images", withWriteLock(assets.Upload)...)
	v1.GET("/projects/:projectID/images", assets.List)
	v1.POST("/images/:imageID/rename", withWriteLock(assets.Rename)...)
	v1.DELETE("/images/:imageID", withWriteLock(assets.Delete)...)
	v1.GET("/files/:imageID", assets.GetFile)
}

func withWriteLock(h app.HandlerFunc) []app.HandlerFunc {
	return append(middleware.WriteLockMw(), h)
}
