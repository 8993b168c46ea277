package main

import (
	"flag"
	"fmt"

	"chartable/cache"
	C "chartable/config"
	H "chartable/handler"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ./app --env=development --api_http_port=8080 --projection_cache_size=512 --allowed_origin=http://localhost:3000
func main() {
	env := flag.String("env", C.EnvDevelopment, "")
	port := flag.Int("api_http_port", 8080, "")
	projectionCacheSize := flag.Int("projection_cache_size", 512, "Number of memoized projections kept in memory")
	allowedOrigin := flag.String("allowed_origin", "", "Origin allowed on CORS, empty disables CORS")
	flag.Parse()

	config := &C.Configuration{
		AppName:             "chartable_server",
		Env:                 *env,
		Port:                *port,
		ProjectionCacheSize: *projectionCacheSize,
		AllowedOrigin:       *allowedOrigin,
	}
	if err := C.Init(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize config.")
	}

	store, err := cache.New(config.ProjectionCacheSize)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize projection cache.")
	}
	H.SetProjectionStore(store)

	if config.Env == C.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	H.InitAppRoutes(r)

	log.WithFields(log.Fields{"port": config.Port, "env": config.Env}).Info("Starting server.")
	if err := r.Run(fmt.Sprintf(":%d", config.Port)); err != nil {
		log.WithError(err).Fatal("Server exited.")
	}
}
