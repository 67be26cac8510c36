package models

import "time"

type ArtifactKind string

const (
	KindMealPlan           ArtifactKind = "meal-plan"
	KindNutritionBreakdown ArtifactKind = "nutrition-breakdown"
	KindChatAnswer         ArtifactKind = "chat-answer"
)

// Artifact is the raw text a model call produced. It lives for a single
// render pass and is shown verbatim.
type Artifact struct {
	ID        string       `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

type ImageAnalysis struct {
	FoodName  string    `json:"food_name"`
	Breakdown *Artifact `json:"breakdown,omitempty"`
}
