package domain

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatContext is whatever the client already knows about the creator.
type ChatContext struct {
	ChatState       string            `json:"chatState,omitempty"`
	Website         *SignalSet        `json:"websiteData,omitempty"`
	Recommendations []Recommendation  `json:"recommendations,omitempty"`
	UserAnswers     map[string]string `json:"userAnswers,omitempty"`
	History         []ChatTurn        `json:"history,omitempty"`
}

type ChatReply struct {
	Reply        string `json:"reply"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	UsedFallback bool   `json:"usedFallback"`
}
