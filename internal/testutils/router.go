package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/api/routes"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/storage"
	"gorm.io/gorm"
)

// SetupRouter wires the full route table against gdb. store may be nil.
func SetupRouter(gdb *gorm.DB, store storage.ObjectStore) (*gin.Engine, *application.Services) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	repos := repository.NewRepositories(gdb)
	svc := application.New(repos, store)
	routes.RegisterRoutes(r, svc, repos)
	return r, svc
}
