package models

import (
	"time"

	"github.com/google/uuid"
)

// CareerCanvas is the single "microcareers" self-assessment document a user
// maintains. Saves merge into the existing document.
type CareerCanvas struct {
	UserID          uuid.UUID `json:"user_id"`
	PossibleAreas   string    `json:"possible_areas,omitempty"`
	DevelopedSkills string    `json:"developed_skills,omitempty"`
	SkillsToDevelop string    `json:"skills_to_develop,omitempty"`
	ActionPlan      string    `json:"action_plan,omitempty"`
	VisionOfSuccess string    `json:"vision_of_success,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsEmpty reports whether every canvas field is blank.
func (c *CareerCanvas) IsEmpty() bool {
	return c.PossibleAreas == "" &&
		c.DevelopedSkills == "" &&
		c.SkillsToDevelop == "" &&
		c.ActionPlan == "" &&
		c.VisionOfSuccess == ""
}
