package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eracards/eraclash/internal/game"
)

type cardEntry struct {
	Name               string `json:"name"`
	Era                string `json:"era"`
	Strength           int    `json:"strength"`
	Damage             int    `json:"damage"`
	Ability            string `json:"ability"`
	AbilityName        string `json:"ability_name"`
	AbilityDescription string `json:"ability_description"`
	Art                string `json:"art"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Per-round action timeout in seconds. When the current actor stays
	// idle past it, the service layer auto-acts for them.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// How long freshly created public matches stay listed.
	PublicMatchesTTLSeconds int `json:"public_matches_ttl_seconds"`
}

// LoadedConfig contains the card catalog to seed and server settings.
type LoadedConfig struct {
	Cards            []game.CardDefinition
	ServerAddress    string
	ActionTimeout    time.Duration
	PublicMatchesTTL time.Duration
}

// CardsByName indexes the catalog for deal-time lookups.
func (c *LoadedConfig) CardsByName() map[string]game.CardDefinition {
	m := make(map[string]game.CardDefinition, len(c.Cards))
	for _, d := range c.Cards {
		m[d.Name] = d
	}
	return m
}

// AbilityChecker reports whether an ability tag resolves to an engine
// rule. Declared here so config does not import the engine package.
type AbilityChecker interface {
	Knows(tag game.AbilityTag) bool
}

// LoadConfig reads the configuration file at path. It requires the key
// `card_list` (snake_case). The checker flags catalog entries whose
// ability the engine has no rule for; those are accepted but logged by
// the caller, since an unknown ability is inert rather than fatal.
func LoadConfig(path string, checker AbilityChecker) (*LoadedConfig, []game.AbilityTag, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}

	out := make([]game.CardDefinition, 0, len(rc.CardList))
	nameSet := make(map[string]struct{}, len(rc.CardList))
	var unknown []game.AbilityTag
	for _, e := range rc.CardList {
		if e.Name == "" {
			return nil, nil, fmt.Errorf("config file %s: card entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, nil, fmt.Errorf("config file %s: duplicate card name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		era := game.Era(e.Era)
		if !game.KnownEra(era) {
			return nil, nil, fmt.Errorf("config file %s: card '%s' has unknown era '%s'", path, e.Name, e.Era)
		}
		if e.Strength <= 0 || e.Damage <= 0 {
			return nil, nil, fmt.Errorf("config file %s: card '%s' must have positive strength and damage", path, e.Name)
		}
		tag := game.AbilityTag(e.Ability)
		if checker != nil && tag != "" && !checker.Knows(tag) {
			unknown = append(unknown, tag)
		}
		out = append(out, game.CardDefinition{
			Name:               e.Name,
			Era:                era,
			BaseStrength:       e.Strength,
			BaseDamage:         e.Damage,
			AbilityTag:         tag,
			AbilityName:        e.AbilityName,
			AbilityDescription: e.AbilityDescription,
			ArtRef:             e.Art,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	actionTimeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		actionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	ttl := 5 * time.Minute
	if rc.PublicMatchesTTLSeconds > 0 {
		ttl = time.Duration(rc.PublicMatchesTTLSeconds) * time.Second
	}

	return &LoadedConfig{
		Cards:            out,
		ServerAddress:    addr,
		ActionTimeout:    actionTimeout,
		PublicMatchesTTL: ttl,
	}, unknown, nil
}
