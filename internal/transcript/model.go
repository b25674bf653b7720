package transcript

import "time"

type Transcription struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Segment struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	TranscriptionID string    `gorm:"not null;index" json:"transcription_id"`
	Text            string    `gorm:"not null" json:"text"`
	Speaker         *string   `json:"speaker"`
	StartTime       float64   `gorm:"not null;index" json:"start"`
	EndTime         float64   `gorm:"not null" json:"end"`
	IsFinal         bool      `gorm:"default:false" json:"is_final"`
	SpeechFinal     bool      `gorm:"default:false" json:"speech_final"`
	CreatedAt       time.Time `json:"created_at"`
}
