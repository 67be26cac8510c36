// Package agent carries the A2A agent card served at
// /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

//go:embed agent.json
var agentCard []byte

// AgentCardData is the validated card, set by LoadAgentCard.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

type card struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Version      string          `json:"version"`
	Capabilities json.RawMessage `json:"capabilities"`
	Endpoints    json.RawMessage `json:"endpoints"`
}

// LoadAgentCard validates the embedded card once.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var c card
		if err := json.Unmarshal(agentCard, &c); err != nil {
			loadErr = fmt.Errorf("failed to parse agent card: %w", err)
			return
		}
		if c.Name == "" || c.Version == "" || len(c.Capabilities) == 0 || len(c.Endpoints) == 0 {
			loadErr = errors.New("agent card is missing required fields")
			return
		}
		AgentCardData = agentCard
	})
	return loadErr
}
