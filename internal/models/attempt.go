package models

import "time"

// Attempt is one imported historical quiz attempt. The raw feed nests the
// quiz fields; they are flattened here for storage.
type Attempt struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Topic          string     `gorm:"size:255;index" json:"topic"`
	Score          float64    `json:"score"`
	FinalScore     float64    `json:"final_score"`
	TotalQuestions int        `json:"total_questions"`
	Questions      []Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Question links a question identifier to its topic within an attempt.
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AttemptID  uint   `gorm:"not null;index" json:"attempt_id"`
	QuestionID string `gorm:"size:64;index" json:"question_id"`
	Topic      string `gorm:"size:255" json:"topic"`
}
