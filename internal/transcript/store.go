package transcript

import (
	"context"
	"errors"

	"github.com/eleven-am/scribe-backend/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Transcription{}, &Segment{})
}

func (s *Store) Create(ctx context.Context, tr *Transcription) error {
	if tr.ID == "" {
		tr.ID = shared.NewID("tr_")
	}
	return s.db.WithContext(ctx).Create(tr).Error
}

func (s *Store) GetByID(ctx context.Context, id string) (*Transcription, error) {
	var tr Transcription
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &tr, err
}

func (s *Store) List(ctx context.Context) ([]*Transcription, error) {
	var trs []*Transcription
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&trs).Error
	return trs, err
}

func (s *Store) ListSegments(ctx context.Context, transcriptionID string) ([]*Segment, error) {
	if _, err := s.GetByID(ctx, transcriptionID); err != nil {
		return nil, err
	}

	var segments []*Segment
	err := s.db.WithContext(ctx).
		Where("transcription_id = ?", transcriptionID).
		Order("start_time ASC").
		Find(&segments).Error
	return segments, err
}

// AppendSegment records a finalized segment against an existing transcription.
// Callers treat failures as advisory; a missing transcription is reported as
// shared.ErrNotFound so the relay can log and move on.
func (s *Store) AppendSegment(ctx context.Context, transcriptionID, text string, speaker *string, start, end float64, isFinal, speechFinal bool) error {
	if _, err := s.GetByID(ctx, transcriptionID); err != nil {
		return err
	}

	seg := &Segment{
		ID:              shared.NewID("seg_"),
		TranscriptionID: transcriptionID,
		Text:            text,
		Speaker:         speaker,
		StartTime:       start,
		EndTime:         end,
		IsFinal:         isFinal,
		SpeechFinal:     speechFinal,
	}
	return s.db.WithContext(ctx).Create(seg).Error
}
