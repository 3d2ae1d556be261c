package score

import (
	"math"

	"probation-eval-backend/lib/evaluation/workflow"
)

const (
	MinRating = 1
	MaxRating = 7
	PassMark  = 60.0
)

type Topic struct {
	ID     int    `json:"id"`
	Weight int    `json:"weight"`
	Title  string `json:"title"`
}

// Topics - веса в сумме дают 100
var Topics = []Topic{
	{ID: 1, Weight: 15, Title: "Work Quantity"},
	{ID: 2, Weight: 15, Title: "Work Quality"},
	{ID: 3, Weight: 15, Title: "Compliance"},
	{ID: 4, Weight: 10, Title: "Learning"},
	{ID: 5, Weight: 10, Title: "Responsibility"},
	{ID: 6, Weight: 10, Title: "Teamwork"},
	{ID: 7, Weight: 10, Title: "Punctuality"},
	{ID: 8, Weight: 5, Title: "Safety"},
	{ID: 9, Weight: 5, Title: "Honesty"},
	{ID: 10, Weight: 5, Title: "Rules"},
}

func TopicByID(id int) (Topic, bool) {
	if id < 1 || id > len(Topics) {
		return Topic{}, false
	}
	return Topics[id-1], true
}

type Result struct {
	Total float64 `json:"total"` // 0..100
	Mean  float64 `json:"mean"`  // 0..7
}

func (r Result) Passed() bool {
	return r.Total >= PassMark
}

// Calculate считает итог как сумму (weight/7)*rating. Оценки вне диапазона и неизвестные темы пропускаются.
func Calculate(ratings map[int]int) Result {
	weighted, raw, count := 0, 0, 0
	for topicID, rating := range ratings {
		topic, ok := TopicByID(topicID)
		if !ok || !inRange(rating) {
			continue
		}
		weighted += topic.Weight * rating
		raw += rating
		count++
	}
	if count == 0 {
		return Result{}
	}
	return Result{
		Total: float64(weighted) / MaxRating,
		Mean:  float64(raw) / float64(count),
	}
}

func TopicScore(topicID, rating int) float64 {
	topic, ok := TopicByID(topicID)
	if !ok || !inRange(rating) {
		return 0
	}
	return float64(topic.Weight*rating) / MaxRating
}

func ValidateRating(topicID, rating int) error {
	if _, ok := TopicByID(topicID); !ok {
		return workflow.ValidationError("unknown topic: %d", topicID)
	}
	if !inRange(rating) {
		return workflow.ValidationError("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func inRange(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
