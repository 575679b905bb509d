package models

import (
	"encoding/json"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries response on success and error otherwise; exactly one
// of the two is encoded.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (c ChatResponse) MarshalJSON() ([]byte, error) {
	if c.Success {
		return json.Marshal(struct {
			Success  bool   `json:"success"`
			Response string `json:"response"`
		}{true, c.Response})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, c.Error})
}

const (
	ModeFallback = "fallback"
	ModeUpstream = "upstream"
)

// Exchange is one handled chat request as written to the exchange log.
type Exchange struct {
	ID        string    `db:"id"`
	Message   string    `db:"message"`
	Mode      string    `db:"mode"`
	Status    int       `db:"status"`
	Response  string    `db:"response"`
	Error     string    `db:"error"`
	CreatedAt time.Time `db:"created_at"`
}
