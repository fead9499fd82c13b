package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parlorgames/impostor-server/internal/repository"
	"github.com/parlorgames/impostor-server/internal/service"
)

// respondError maps the service/repository error taxonomy onto HTTP statuses:
// missing rows are 404, authorization failures 403, precondition failures 409,
// malformed requests 400, everything else 500 (the shell retries those).
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, repository.ErrGamePlayerNotFound),
		errors.Is(err, repository.ErrRoundNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotHost):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrWrongPhase),
		errors.Is(err, service.ErrNotEnoughPlayers),
		errors.Is(err, service.ErrGameNotOver),
		errors.Is(err, service.ErrVotesIncomplete),
		errors.Is(err, service.ErrVoterEliminated),
		errors.Is(err, service.ErrGameInProgress),
		errors.Is(err, service.ErrSessionEnded):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidVote):
		status = http.StatusBadRequest
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
