package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/14kear/livepoll/internal/broadcast"
	"github.com/14kear/livepoll/internal/engine"
	"github.com/14kear/livepoll/internal/entity"
	"github.com/14kear/livepoll/internal/middleware"
	"github.com/14kear/livepoll/internal/services"
	"github.com/gin-gonic/gin"
)

type LivePollHandler struct {
	polls   *services.LivePolls
	rooms   *services.Rooms
	results *services.Results
	hub     *broadcast.Hub
}

type CreateRoomRequest struct {
	Name      string `json:"name"      binding:"required"`
	TeacherID string `json:"teacherId" binding:"required"`
}

type CreatePollRequest struct {
	Question           string   `json:"question"           binding:"required"`
	Options            []string `json:"options"            binding:"required,min=2,dive,required"`
	CorrectOptionIndex *int     `json:"correctOptionIndex" binding:"required,min=0"`
	Timer              *int     `json:"timer"              binding:"omitempty,min=5,max=300"`
}

type SubmitAnswerRequest struct {
	UserID      string `json:"userId"`
	AnswerIndex *int   `json:"answerIndex" binding:"required,min=0"`
}

func NewLivePollHandler(
	polls *services.LivePolls,
	rooms *services.Rooms,
	results *services.Results,
	hub *broadcast.Hub,
) *LivePollHandler {
	return &LivePollHandler{
		polls:   polls,
		rooms:   rooms,
		results: results,
		hub:     hub,
	}
}

func (h *LivePollHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), req.Name, req.TeacherID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room})
}

func (h *LivePollHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.GetRoom(c.Request.Context(), roomCode(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room})
}

func (h *LivePollHandler) EndRoom(c *gin.Context) {
	room, err := h.rooms.EndRoom(c.Request.Context(), roomCode(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room})
}

func (h *LivePollHandler) ListTeacherRooms(c *gin.Context) {
	status := entity.RoomStatus(c.Query("status"))

	rooms, err := h.rooms.ListRooms(c.Request.Context(), c.Param("teacherId"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	if rooms == nil {
		rooms = []entity.Room{}
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *LivePollHandler) CreatePoll(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	in := services.CreatePollInput{
		Question:           req.Question,
		Options:            req.Options,
		CorrectOptionIndex: *req.CorrectOptionIndex,
	}
	if req.Timer != nil {
		in.TimerSeconds = *req.Timer
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), roomCode(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"poll": poll})
}

func (h *LivePollHandler) ListPolls(c *gin.Context) {
	polls, err := h.polls.ListActivePolls(c.Request.Context(), roomCode(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

func (h *LivePollHandler) GetPoll(c *gin.Context) {
	poll, err := h.polls.GetPoll(c.Request.Context(), roomCode(c), c.Param("pollId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll})
}

func (h *LivePollHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		userID = strings.TrimSpace(req.UserID)
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	snap, err := h.polls.SubmitVote(c.Request.Context(), roomCode(c), c.Param("pollId"), userID, *req.AnswerIndex)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "poll": services.NewPollView(snap)})
}

func (h *LivePollHandler) EndPoll(c *gin.Context) {
	snap, err := h.polls.EndPoll(c.Request.Context(), roomCode(c), c.Param("pollId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": services.NewPollView(snap)})
}

func (h *LivePollHandler) DeletePoll(c *gin.Context) {
	if err := h.polls.DeletePoll(c.Request.Context(), roomCode(c), c.Param("pollId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LivePollHandler) GetResults(c *gin.Context) {
	results, err := h.results.PollResults(c.Request.Context(), roomCode(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Subscribe upgrades to a websocket that streams the room's events.
func (h *LivePollHandler) Subscribe(c *gin.Context) {
	code := roomCode(c)
	if _, err := h.rooms.GetRoom(c.Request.Context(), code); err != nil {
		writeError(c, err)
		return
	}

	h.hub.ServeWS(c.Writer, c.Request, code)
}

func roomCode(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, engine.ErrInvalidSpec),
		errors.Is(err, engine.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, engine.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRoomEnded),
		errors.Is(err, engine.ErrPollClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
