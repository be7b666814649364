package dto

// RecommendationResponse is one scored suggestion with the reasons that produced it.
type RecommendationResponse struct {
	MediaItem MediaItemResponse `json:"mediaItem"`
	Score     float64           `json:"score"`
	Reasons   []string          `json:"reasons"`
}
