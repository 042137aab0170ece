package routes

import (
	"github.com/14kear/livepoll/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterRoomRoutes(rg *gin.RouterGroup, handler *handlers.LivePollHandler) {
	{
		rg.POST("/rooms", handler.CreateRoom)
		rg.GET("/rooms/:code", handler.GetRoom)
		rg.POST("/rooms/:code/end", handler.EndRoom)
		rg.GET("/rooms/:code/results", handler.GetResults)
		rg.GET("/rooms/:code/ws", handler.Subscribe)

		rg.GET("/teachers/:teacherId/rooms", handler.ListTeacherRooms)
	}
}

func RegisterPollRoutes(rg *gin.RouterGroup, handler *handlers.LivePollHandler) {
	{
		rg.POST("/rooms/:code/polls", handler.CreatePoll)
		rg.GET("/rooms/:code/polls", handler.ListPolls)
		rg.GET("/rooms/:code/polls/:pollId", handler.GetPoll)
		rg.POST("/rooms/:code/polls/:pollId/answer", handler.SubmitAnswer)
		rg.POST("/rooms/:code/polls/:pollId/end", handler.EndPoll)
		rg.DELETE("/rooms/:code/polls/:pollId", handler.DeletePoll)
	}
}
