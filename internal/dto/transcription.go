package dto

import "time"

type CreateTranscriptionRequest struct {
	Title string `json:"title" validate:"required" example:"Morning standup"`
}

type TranscriptionResponse struct {
	ID        string    `json:"id" example:"tr_9f8e7d6c"`
	Title     string    `json:"title" example:"Morning standup"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TranscriptionListResponse struct {
	Total          int                     `json:"total" example:"3"`
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
}

type SegmentResponse struct {
	ID          string  `json:"id" example:"seg_1a2b3c4d"`
	Text        string  `json:"text" example:"Hello world."`
	Speaker     *string `json:"speaker" example:"speaker_0"`
	Start       float64 `json:"start" example:"0.0"`
	End         float64 `json:"end" example:"1.25"`
	IsFinal     bool    `json:"is_final" example:"true"`
	SpeechFinal bool    `json:"speech_final" example:"true"`
}

type SegmentListResponse struct {
	TranscriptionID string            `json:"transcription_id" example:"tr_9f8e7d6c"`
	Total           int               `json:"total" example:"12"`
	Segments        []SegmentResponse `json:"segments"`
}
