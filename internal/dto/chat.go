package dto

type ChatRequest struct {
	Message string `json:"message" example:"How should I budget my salary?"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
