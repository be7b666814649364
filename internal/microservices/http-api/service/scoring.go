package service

import (
	"sort"
	"strings"

	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
)

const (
	maxRecommendations = 10
	seedMinScore       = 8
	maxSeeds           = 5
	linksPerSeed       = 2
	maxScore           = 10.0
	defaultLinkReason  = "similarity"
)

// scoreItemLinks turns an item's outgoing links into recommendations, one per link,
// keeping the order the links were given in.
func scoreItemLinks(links []models.Link) []dto.RecommendationResponse {
	out := make([]dto.RecommendationResponse, 0, len(links))
	for i := range links {
		l := &links[i]
		if l.ToMedia == nil {
			continue
		}
		out = append(out, dto.RecommendationResponse{
			MediaItem: dto.FromModelToMediaItemResponse(l.ToMedia),
			Score:     l.Strength,
			Reasons:   []string{"Linked by " + linkReason(l.Note)},
		})
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}

func linkReason(note *string) string {
	if note == nil {
		return defaultLinkReason
	}
	if n := strings.TrimSpace(*note); n != "" {
		return n
	}
	return defaultLinkReason
}

// seedWalk is one seed rating together with the links walked from its item.
type seedWalk struct {
	Seed  models.Rating
	Links []models.Link
}

// scoreUserSeeds combines seed walks into a personalized list. Each edge scores
// strength × (seed score / 10). A target reached more than once keeps its best
// score and collects every reason. The result is sorted by score, highest first,
// with discovery order breaking ties, and capped at maxRecommendations.
func scoreUserSeeds(walks []seedWalk) []dto.RecommendationResponse {
	var out []dto.RecommendationResponse
	index := make(map[string]int)

	for _, w := range walks {
		title := ""
		if w.Seed.MediaItem != nil {
			title = w.Seed.MediaItem.Title
		}
		reason := "Similar to " + title
		weight := float64(w.Seed.Score) / maxScore

		for i := range w.Links {
			l := &w.Links[i]
			if l.ToMedia == nil {
				continue
			}
			score := l.Strength * weight

			if pos, ok := index[l.ToMediaID]; ok {
				rec := &out[pos]
				if score > rec.Score {
					rec.Score = score
				}
				if !containsString(rec.Reasons, reason) {
					rec.Reasons = append(rec.Reasons, reason)
				}
				continue
			}
			index[l.ToMediaID] = len(out)
			out = append(out, dto.RecommendationResponse{
				MediaItem: dto.FromModelToMediaItemResponse(l.ToMedia),
				Score:     score,
				Reasons:   []string{reason},
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	if out == nil {
		out = []dto.RecommendationResponse{}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
