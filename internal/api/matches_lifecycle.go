package api

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/logging"
	"github.com/eracards/eraclash/internal/service"

	"github.com/gin-gonic/gin"
)

// buildDeck validates a deck submission and turns it into ordered deck
// rows. Either names holds the explicit card list or starterDeck names a
// preset from the deck file. Returns a client-facing error message when
// the submission is invalid.
func (h *MatchHandler) buildDeck(names []string, starterDeck string) ([]game.DeckCard, string) {
	if starterDeck != "" {
		found := false
		for _, sd := range h.starterDecks {
			if strings.EqualFold(sd.Name, starterDeck) {
				names = sd.Cards
				found = true
				break
			}
		}
		if !found {
			return nil, constants.ErrUnknownStarterDeck
		}
	}
	if len(names) != game.DeckSize {
		return nil, constants.ErrDeckSize
	}
	seen := make(map[string]bool, len(names))
	deck := make([]game.DeckCard, 0, len(names))
	for i, n := range names {
		def, ok := h.defsByName[strings.TrimSpace(n)]
		if !ok {
			return nil, constants.ErrDeckUnknownCard
		}
		key := strings.ToLower(def.Name)
		if seen[key] {
			return nil, constants.ErrDeckDuplicateCard
		}
		seen[key] = true
		deck = append(deck, game.DeckCard{Position: i, CardName: def.Name})
	}
	return deck, ""
}

type CreateMatchPayload struct {
	PlayerName  string   `json:"player_name"`
	Name        string   `json:"name"`
	Private     bool     `json:"private"`
	Deck        []string `json:"deck"`
	StarterDeck string   `json:"starter_deck"`
}

// CreateMatch creates a new match and returns IDs and join code.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Derive identity from session
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if v, ok := c.Get(ctxUserName); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNameExceeds})
		return
	}

	deck, errMsg := h.buildDeck(req.Deck, req.StarterDeck)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: errMsg})
		return
	}

	// Upsert user profile; the stored UUID identifies the player across
	// matches.
	u, err := h.repo.UpsertUser(email, req.PlayerName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}

	joinCode := generateJoinCode()
	newMatch := game.Match{
		Name:     req.Name,
		Private:  req.Private,
		Status:   game.StatusWaitingForPlayers,
		JoinCode: joinCode,
		Players: []game.Player{
			{PlayerName: u.PlayerName, PlayerEmail: email, PlayerUUID: u.PlayerUUID, Deck: deck},
		},
		Message: "Match created. Waiting for second player.",
	}

	if err := h.repo.CreateMatch(&newMatch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_id":  newMatch.ID,
		"join_code": joinCode,
	})
}

type JoinMatchPayload struct {
	JoinCode    string   `json:"join_code"`
	PlayerName  string   `json:"player_name"`
	Deck        []string `json:"deck"`
	StarterDeck string   `json:"starter_deck"`
}

// JoinMatch allows a second player to join a match via join code.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if v, ok := c.Get(ctxUserName); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	// Mutations share the per-match lock with the intent services, and
	// the match is reloaded under it so concurrent joins cannot both
	// claim the free seat.
	unlock := service.LockMatch(m.ID)
	defer unlock()
	m, err = h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	if m.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		return
	}
	if len(m.Players) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		return
	}

	deck, errMsg := h.buildDeck(req.Deck, req.StarterDeck)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: errMsg})
		return
	}

	u, err := h.repo.UpsertUser(email, req.PlayerName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}

	m.Players = append(m.Players, game.Player{PlayerName: u.PlayerName, PlayerEmail: email, PlayerUUID: u.PlayerUUID, Deck: deck})
	m.Status = game.StatusWaitingForPlayers
	m.Message = "Second player joined. Waiting for the match to start."

	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id":  m.ID,
		"join_code": m.JoinCode,
		"message":   "Successfully joined match",
	})
}

// StartMatch initializes state for the first round.
func (h *MatchHandler) StartMatch(c *gin.Context) {
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

	// Loaded under the shared per-match lock so a concurrent join or
	// second start request sees the updated status.
	unlock := service.LockMatch(short.ID)
	defer unlock()
	m, err := h.repo.GetMatchByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	isParticipant := false
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}

	if len(m.Players) < 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		return
	}
	if m.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		return
	}

	if err := service.StartMatch(h.repo, m, h.defsByName, h.actionTimeout); err != nil {
		logging.Error("failed to start match", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match started"})
}

// LeaveMatch removes a player from a waiting room.
func (h *MatchHandler) LeaveMatch(c *gin.Context) {
	code := normalizeJoinCode(c.Param("matchCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	unlock := service.LockMatch(m.ID)
	defer unlock()
	m, err = h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	if m.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterMatchStart})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var leaving *game.Player
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			leaving = &m.Players[i]
			break
		}
	}
	if leaving == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}
	if err := h.repo.RemovePlayerByUUID(m.ID, leaving.PlayerUUID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via
	// FullSaveAssociations.
	filtered := make([]game.Player, 0, len(m.Players))
	for _, p := range m.Players {
		if p.PlayerEmail != email {
			filtered = append(filtered, p)
		}
	}
	m.Players = filtered
	m.Message = "A player left. Waiting for a new participant."
	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// EndMatch allows a participant to end the match (counts as a resignation).
func (h *MatchHandler) EndMatch(c *gin.Context) {
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

	// A resignation racing an intent or the timeout scanner must not
	// operate on a stale copy: take the shared lock, reload, and bail
	// out if the match already ended under someone else's hands.
	unlock := service.LockMatch(short.ID)
	defer unlock()
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	if m.Over() {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyOver})
		return
	}

	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var loser *game.Player
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			loser = &m.Players[i]
			break
		}
	}
	if loser == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}

	// Resignations only increment the quitter's resignation stat and do
	// not award a win to anyone.
	m.Status = game.StatusFinished
	m.CurrentPhase = game.PhaseGameOver
	m.Winner = ""
	m.Message = "Player resigned: " + loser.PlayerName
	m.ActionDeadline = time.Time{}

	if !m.StatsCounted {
		_ = h.repo.UpdateStatsOnMatchEnd(m, loser.PlayerEmail)
		m.StatsCounted = true
	}
	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match ended"})
}
