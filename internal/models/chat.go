package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	Stream  bool   `json:"stream"`
}

// ChatResponse is the non-streaming reply from the chat endpoint.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ProviderInfo describes the AI provider resolved at startup.
type ProviderInfo struct {
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
}
