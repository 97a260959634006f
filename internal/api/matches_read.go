package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/dedupe"
	"github.com/eracards/eraclash/internal/game"

	"github.com/gin-gonic/gin"
)

// ListCards returns the full card catalog. Concurrent requests share a
// single database read.
func (h *MatchHandler) ListCards(c *gin.Context) {
	v, err, _ := dedupe.CatalogGroup.Do("cards", func() (interface{}, error) {
		return h.repo.GetCards()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListStarterDecks returns the preset decks players can pick instead of
// building their own.
func (h *MatchHandler) ListStarterDecks(c *gin.Context) {
	c.JSON(http.StatusOK, h.starterDecks)
}

// ListPublicMatches returns recent public matches waiting for players or
// in progress. Each match is reduced to its browser summary; full match
// state (wagers included) is only served per viewer via GetMatch.
func (h *MatchHandler) ListPublicMatches(c *gin.Context) {
	matches, err := h.repo.GetPublicMatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	summaries := make([]game.MatchSummary, 0, len(matches))
	for i := range matches {
		summaries = append(summaries, game.SummaryOf(&matches[i]))
	}
	c.JSON(http.StatusOK, summaries)
}

// ListLeaderboard returns the top players by wins (desc), limited to top 10 by default.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (interface{}, error) {
		return h.repo.GetTopPlayers(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatch returns a match by join code, filtered to what the caller is
// allowed to see. An opponent's uncommitted choices and committed wager
// are never included.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	code := normalizeJoinCode(c.Param("matchCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	short, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	m, err := h.repo.GetMatchByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	// Spectators get the empty-viewer projection.
	viewerUUID := ""
	if email := sessionEmail(c); email != "" {
		for i := range m.Players {
			if m.Players[i].PlayerEmail == email {
				viewerUUID = m.Players[i].PlayerUUID
				break
			}
		}
	}

	view := game.ViewFor(m, viewerUUID)
	out, err := MarshalForContext(c, view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns aggregated stats for a given player email.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = sessionEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	ps, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, ps)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdatePlayerProfile updates the authenticated player's display name.
func (h *MatchHandler) UpdatePlayerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	// Validate display name using the same Unicode-aware pattern as the
	// frontend. Accept letters, marks, numbers, apostrophe, dot, hyphen
	// and spaces, length 4-40.
	var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

	trimmed := strings.TrimSpace(body.Name)
	if !playerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Invalid player name"})
		return
	}

	ps, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	ps.PlayerName = trimmed
	if err := h.repo.SaveUser(ps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
