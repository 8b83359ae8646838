package zotero

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes the connection target for observability.
type ClientState struct {
	BaseURL  string `json:"base_url"`
	Library  string `json:"library"`
	PageSize int    `json:"page_size"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	return ClientState{
		BaseURL:  c.baseURL,
		Library:  c.prefix,
		PageSize: c.limit,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "zotero"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
