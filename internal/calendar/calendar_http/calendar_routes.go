package calendar_http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/calendar")
	group.GET("/days", handler.DaysCovered)
}
