package dto

// AskRequest carries one user utterance. SessionId is optional; when empty
// the server opens a fresh session and returns its id in the response.
type AskRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

type AskResponse struct {
	SessionId   string   `json:"session_id"`
	Answer      string   `json:"answer"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions,omitempty"`
	Mode        string   `json:"mode"`
}

type HistoryTurnDTO struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type GetHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Turns     []HistoryTurnDTO `json:"turns"`
}

type DeleteSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}
