package dto

type GetThresholdsResponse struct {
	Exact    float64 `json:"exact"`
	Probable float64 `json:"probable"`
}

type UpdateThresholdsRequest struct {
	Exact    float64 `json:"exact" validate:"required,gt=0,lte=1"`
	Probable float64 `json:"probable" validate:"required,gt=0,lte=1"`
}

type ReloadCorpusResponse struct {
	Entries int `json:"entries"`
	Vectors int `json:"vectors"`
}

type UnansweredQuestionResponse struct {
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
	Question  string  `json:"question"`
}
