package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parlorgames/impostor-server/internal/api/http/converter"
	"github.com/parlorgames/impostor-server/internal/domain"
	"github.com/parlorgames/impostor-server/internal/service"
)

type GameController struct {
	games service.GameInteractor
	stats service.StatsInteractor
}

func NewGameController(games service.GameInteractor, stats service.StatsInteractor) *GameController {
	return &GameController{games: games, stats: stats}
}

type clientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

func bindClient(ctx *gin.Context) (string, bool) {
	var req clientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return "", false
	}
	return req.ClientID, true
}

func (c *GameController) StartGame(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	game, err := c.games.StartGame(ctx.Request.Context(), ctx.Param("code"), clientID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"game": converter.GameResponse{
		ID:                 game.ID,
		Status:             game.Status,
		CurrentRoundNumber: game.CurrentRoundNumber,
	}})
}

func (c *GameController) AcknowledgeRole(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	if err := c.games.AcknowledgeRole(ctx.Request.Context(), ctx.Param("code"), clientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *GameController) SubmitVote(ctx *gin.Context) {
	type request struct {
		ClientID       string `json:"client_id" binding:"required"`
		TargetPlayerID string `json:"target_player_id"`
		Action         string `json:"action"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var choice service.VoteChoice
	if req.TargetPlayerID != "" {
		target, err := uuid.Parse(req.TargetPlayerID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid target player id"})
			return
		}
		choice.TargetPlayerID = &target
	}
	if req.Action != "" {
		action := domain.MajorityAction(req.Action)
		choice.Action = &action
	}

	if err := c.games.SubmitVote(ctx.Request.Context(), ctx.Param("code"), req.ClientID, choice); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *GameController) ResolveRound(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	outcome, err := c.games.ResolveRound(ctx.Request.Context(), ctx.Param("code"), clientID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := gin.H{"action": outcome.Action}
	if outcome.Action == domain.OutcomeEliminate {
		resp["eliminated_player_id"] = outcome.EliminatedPlayerID
		resp["eliminated_impostor"] = outcome.EliminatedImpostor
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *GameController) Proceed(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	if err := c.games.ProceedFromConclusion(ctx.Request.Context(), ctx.Param("code"), clientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *GameController) EndGame(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	if err := c.games.EndGame(ctx.Request.Context(), ctx.Param("code"), clientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *GameController) PlayAgain(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	game, err := c.games.PlayAgain(ctx.Request.Context(), ctx.Param("code"), clientID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"game": converter.GameResponse{
		ID:                 game.ID,
		Status:             game.Status,
		CurrentRoundNumber: game.CurrentRoundNumber,
	}})
}

func (c *GameController) EndSession(ctx *gin.Context) {
	clientID, ok := bindClient(ctx)
	if !ok {
		return
	}

	if err := c.games.EndSession(ctx.Request.Context(), ctx.Param("code"), clientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *GameController) SessionStats(ctx *gin.Context) {
	stats, err := c.stats.SessionStats(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, converter.StatsToAPI(stats))
}
