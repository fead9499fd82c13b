package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(roomController *RoomController, gameController *GameController, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	rooms := api.Group("/rooms")
	rooms.POST("", roomController.CreateRoom)
	rooms.GET("/:code", roomController.GetRoom)
	rooms.GET("/:code/state", roomController.GetState)
	rooms.POST("/:code/join", roomController.JoinRoom)
	rooms.POST("/:code/leave", roomController.LeaveRoom)
	rooms.GET("/:code/chat", roomController.ListChat)
	rooms.POST("/:code/chat", roomController.PostChat)
	rooms.GET("/:code/ws", roomController.Events)

	rooms.POST("/:code/start", gameController.StartGame)
	rooms.POST("/:code/ack", gameController.AcknowledgeRole)
	rooms.POST("/:code/vote", gameController.SubmitVote)
	rooms.POST("/:code/resolve", gameController.ResolveRound)
	rooms.POST("/:code/proceed", gameController.Proceed)
	rooms.POST("/:code/end-game", gameController.EndGame)
	rooms.POST("/:code/play-again", gameController.PlayAgain)
	rooms.POST("/:code/end-session", gameController.EndSession)
	rooms.GET("/:code/stats", gameController.SessionStats)

	return router
}
