package handler

import (
	C "chartable/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitAppRoutes registers the transformation endpoints. Every projection
// endpoint takes the already fetched query result in the request body;
// this service does no data fetching of its own.
func InitAppRoutes(r *gin.Engine) {
	r.Use(RequestIDGenerator())

	config := C.GetConfig()
	if config != nil && config.AllowedOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{config.AllowedOrigin}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/status", StatusHandler)

	views := r.Group("/projects/:project_id/views")
	views.POST("/attribution/table", AttributionTableHandler)
	views.POST("/attribution/compare", AttributionCompareHandler)
	views.POST("/events/breakdown", EventBreakdownHandler)
	views.POST("/funnel/table", FunnelTableHandler)
	views.POST("/charts/series", ChartSeriesHandler)
	views.POST("/table/download", TableDownloadHandler)
}
