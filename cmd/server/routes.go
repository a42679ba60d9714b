package main

import (
	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/api/rest/ask"
	"github.com/lbliii/milodocs/api/rest/health"
	"github.com/lbliii/milodocs/api/rest/summarize"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, svc Assistant, limit gin.HandlerFunc) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)
	router.GET("/ping", health.PingHandler)

	v1 := router.Group("/api/v1", limit)

	{
		ask.RegisterRoutes(v1, svc)
		summarize.RegisterRoutes(v1, svc)
	}

	// function-style paths used by the site
	functions := router.Group("", limit)

	{
		ask.RegisterRoutes(functions, svc)
		summarize.RegisterRoutes(functions, svc)
	}
}
