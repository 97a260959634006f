package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "ERACLASH_CONFIG"
	EnvDBPath              = "ERACLASH_DB"
	EnvDecksPath           = "ERACLASH_DECKS"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "ec_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteVersion            = "/version"
	RouteCards              = "/cards"
	RouteStarterDecks       = "/decks"
	RoutePublicMatches      = "/public-matches"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteMatches            = "/matches"
	RouteMatchesJoin        = "/matches/join"
	RouteMatchByCode        = "/matches/:matchCode"
	RouteMatchStart         = "/matches/:matchCode/start"
	RouteMatchEnd           = "/matches/:matchCode/end"
	RouteMatchLeave         = "/matches/:matchCode/leave"
	RouteMatchSelectCard    = "/matches/:matchCode/select-card"
	RouteMatchWager         = "/matches/:matchCode/wager"
	RouteMatchCancel        = "/matches/:matchCode/cancel"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidMatchCode       = "Invalid match code"
	ErrMatchNotFound          = "Match not found"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedEncodeMatch      = "Failed to encode match"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateMatch           = "Failed to create match"
	ErrMatchNameExceeds            = "Match name exceeds 32 characters"
	ErrMatchFull                   = "Match is full"
	ErrNotEnoughPlayers            = "Not enough players to start the match"
	ErrMatchAlreadyStarted         = "Match is already starting or started"
	ErrFailedUpdateMatch           = "Failed to update match"
	ErrFailedEndMatch              = "Failed to end match"
	ErrFailedRemovePlayer          = "Failed to remove player"
	ErrPlayerNotInThisMatch        = "Player not in this match"
	ErrCannotLeaveAfterMatchStart  = "Cannot leave after the match has started"
	ErrDeckSize                    = "A deck must contain exactly 8 card names"
	ErrDeckUnknownCard             = "Deck references an unknown card"
	ErrDeckDuplicateCard           = "Deck contains a duplicate card"
	ErrUnknownStarterDeck          = "Unknown starter deck"
	ErrMatchNotInProgress          = "Match is not in progress"
	ErrActionsLockedResolvingRound = "Actions are locked; resolving current round"

	ErrInvalidSelection   = "Invalid or used card selection"
	ErrInvalidWager       = "Invalid wager"
	ErrNoActiveSelection  = "No active selection to cancel"
	ErrOutOfTurn          = "Not your turn"
	ErrMatchAlreadyOver   = "Match is already over"
	ErrFailedStoreAction  = "Failed to store action"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID   = "match_id"
	LogFieldPlayerIdx = "player_index"
	LogFieldCardName  = "card_name"
	LogFieldAbility   = "ability"
	LogFieldEra       = "era"
	LogFieldRound     = "round"
	LogFieldAddr      = "addr"
)
