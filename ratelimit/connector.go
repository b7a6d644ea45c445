package ratelimit

import (
	"github.com/aschepis/backscratcher/aifast/llm"
)

// ConnectorName identifies the connector in credential errors.
const ConnectorName = "connector"

// Connector pairs an API key with a Tracker. It performs no network activity.
type Connector struct {
	*Tracker
	apiKey string
}

// NewConnector returns a Connector for apiKey. An empty key is rejected.
func NewConnector(apiKey string, opts ...Option) (*Connector, error) {
	if apiKey == "" {
		return nil, llm.NewInvalidCredentialError(ConnectorName)
	}
	return &Connector{
		Tracker: NewTracker(opts...),
		apiKey:  apiKey,
	}, nil
}

// ValidateConnection always reports true; the connector has nothing to check.
func (c *Connector) ValidateConnection() bool {
	return true
}
