package api

import (
	"errors"
	"net/http"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/service"

	"github.com/gin-gonic/gin"
)

type SelectCardRequest struct {
	CardIndex int `json:"card_index"`
}

type WagerRequest struct {
	Amount int `json:"amount"`
}

// resolveIntentMatch resolves the route join code and session identity
// shared by all intent handlers. On failure it writes the response and
// returns ok=false.
func (h *MatchHandler) resolveIntentMatch(c *gin.Context) (matchID uint, email string, ok bool) {
	code := normalizeJoinCode(c.Param("matchCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return 0, "", false
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return 0, "", false
	}
	email = sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return 0, "", false
	}
	return m.ID, email, true
}

// writeIntentError maps service and engine errors to HTTP responses.
func writeIntentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
	case errors.Is(err, service.ErrMatchNotInProgress):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
	case errors.Is(err, service.ErrActionsLocked):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionsLockedResolvingRound})
	case errors.Is(err, service.ErrPlayerNotInMatch), errors.Is(err, engine.ErrPlayerNotInMatch):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
	case errors.Is(err, engine.ErrOutOfTurn):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOutOfTurn})
	case errors.Is(err, engine.ErrMatchAlreadyOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyOver})
	case errors.Is(err, engine.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSelection})
	case errors.Is(err, engine.ErrInvalidWager):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidWager})
	case errors.Is(err, engine.ErrNoActiveSelection):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActiveSelection})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
	}
}

// viewForEmail projects a match for the session player.
func viewForEmail(m *game.Match, email string) game.MatchView {
	viewerUUID := ""
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			viewerUUID = m.Players[i].PlayerUUID
			break
		}
	}
	return game.ViewFor(m, viewerUUID)
}

// SelectCard records the caller's card choice for the current round.
func (h *MatchHandler) SelectCard(c *gin.Context) {
	matchID, email, ok := h.resolveIntentMatch(c)
	if !ok {
		return
	}
	var req SelectCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	m, err := service.SelectCard(h.repo, matchID, email, req.CardIndex)
	if err != nil {
		writeIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "Card selected. Submit a wager to commit.",
		"match":                  viewForEmail(m, email),
	})
}

// SubmitWager commits the caller's wager; the round resolves when the
// defender commits.
func (h *MatchHandler) SubmitWager(c *gin.Context) {
	matchID, email, ok := h.resolveIntentMatch(c)
	if !ok {
		return
	}
	var req WagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	m, resolved, err := service.SubmitWager(h.rules, h.repo, matchID, email, req.Amount, h.actionTimeout)
	if err != nil {
		writeIntentError(c, err)
		return
	}
	msg := "Wager committed. Waiting for opponent."
	if resolved {
		msg = "Round resolved"
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: msg,
		"round":                  m.Round,
		"match":                  viewForEmail(m, email),
	})
}

// CancelSelection clears the caller's selection and refunds any
// committed wager.
func (h *MatchHandler) CancelSelection(c *gin.Context) {
	matchID, email, ok := h.resolveIntentMatch(c)
	if !ok {
		return
	}
	m, err := service.CancelSelection(h.repo, matchID, email)
	if err != nil {
		writeIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "Selection cancelled",
		"match":                  viewForEmail(m, email),
	})
}
