package relay

import (
	"testing"

	"github.com/eleven-am/scribe-backend/internal/transcription"
)

func makeResult(text string, start, duration float64, isFinal, speechFinal bool) *transcription.Result {
	return &transcription.Result{
		IsFinal:     isFinal,
		SpeechFinal: speechFinal,
		Start:       start,
		Duration:    duration,
		Channel: transcription.Channel{
			Alternatives: []transcription.Alternative{{Transcript: text}},
		},
	}
}

func TestReconciler_InterimThenFinal(t *testing.T) {
	r := NewReconciler()

	seg, persist, err := r.Apply(makeResult("hel", 0, 0.4, false, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg == nil || seg.Text != "hel" {
		t.Fatalf("expected interim segment 'hel', got %+v", seg)
	}
	if persist {
		t.Error("interim revision must not be persisted")
	}

	seg, persist, err = r.Apply(makeResult("hello", 0, 0.9, false, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Text != "hello" {
		t.Errorf("expected interim revision 'hello', got '%s'", seg.Text)
	}
	if persist {
		t.Error("interim revision must not be persisted")
	}

	seg, persist, err = r.Apply(makeResult("hello.", 0, 1.0, true, true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Text != "hello." {
		t.Errorf("expected final 'hello.', got '%s'", seg.Text)
	}
	if !persist {
		t.Error("final revision must be persisted")
	}

	segments := r.Segments()
	if len(segments) != 1 {
		t.Fatalf("expected one segment per start offset, got %d", len(segments))
	}
	if segments[0].Text != "hello." {
		t.Errorf("final must supersede interims, got '%s'", segments[0].Text)
	}
}

func TestReconciler_StaleInterimAfterFinal(t *testing.T) {
	r := NewReconciler()

	if _, _, err := r.Apply(makeResult("done.", 2.0, 1.0, true, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seg, persist, err := r.Apply(makeResult("don", 2.0, 0.5, false, false))
	if err != nil {
		t.Fatalf("stale interim is not malformed: %v", err)
	}
	if seg != nil {
		t.Errorf("stale interim must be dropped, got %+v", seg)
	}
	if persist {
		t.Error("stale interim must not be persisted")
	}

	segments := r.Segments()
	if len(segments) != 1 || segments[0].Text != "done." {
		t.Errorf("final must survive a late interim, got %+v", segments)
	}
}

func TestReconciler_PersistOncePerOffset(t *testing.T) {
	r := NewReconciler()

	_, persist, err := r.Apply(makeResult("so anyway", 0, 1.5, true, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !persist {
		t.Fatal("first final revision must be persisted")
	}

	// Deepgram can re-emit the utterance with speech_final set after the
	// is_final revision was already flushed.
	_, persist, err = r.Apply(makeResult("so anyway.", 0, 1.6, true, true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persist {
		t.Error("an offset already persisted must not be written again")
	}
}

func TestReconciler_EmptyHypothesisDropped(t *testing.T) {
	r := NewReconciler()

	seg, persist, err := r.Apply(makeResult("", 0, 0.2, false, false))
	if err != nil {
		t.Fatalf("empty hypothesis is not malformed: %v", err)
	}
	if seg != nil || persist {
		t.Errorf("empty hypothesis must produce nothing, got seg=%+v persist=%v", seg, persist)
	}
	if len(r.Segments()) != 0 {
		t.Error("empty hypothesis must not create a segment")
	}
}

func TestReconciler_MalformedResults(t *testing.T) {
	r := NewReconciler()

	if _, _, err := r.Apply(nil); err == nil {
		t.Error("nil result must be reported as malformed")
	}

	noAlts := &transcription.Result{Start: 0, Duration: 1}
	if _, _, err := r.Apply(noAlts); err == nil {
		t.Error("result without alternatives must be reported as malformed")
	}

	if _, _, err := r.Apply(makeResult("text", 0, -1, false, false)); err == nil {
		t.Error("negative duration must be reported as malformed")
	}
}

func TestReconciler_SpeakerLabel(t *testing.T) {
	r := NewReconciler()

	speaker := 1
	res := makeResult("welcome back", 3.0, 1.0, true, true)
	res.Channel.Alternatives[0].Words = []transcription.Word{
		{Word: "welcome", Start: 3.0, End: 3.4, Speaker: &speaker},
		{Word: "back", Start: 3.4, End: 4.0, Speaker: &speaker},
	}

	seg, _, err := r.Apply(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Speaker == nil || *seg.Speaker != "speaker_1" {
		t.Errorf("expected speaker_1, got %v", seg.Speaker)
	}
	if seg.End != 4.0 {
		t.Errorf("expected end = start + duration = 4.0, got %f", seg.End)
	}
}

func TestReconciler_MultipleOffsetsOrdered(t *testing.T) {
	r := NewReconciler()

	if _, _, err := r.Apply(makeResult("world", 2.0, 1.0, true, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := r.Apply(makeResult("hello", 0, 1.5, true, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments := r.Segments()
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "hello" || segments[1].Text != "world" {
		t.Errorf("segments must be ordered by start offset, got %q then %q", segments[0].Text, segments[1].Text)
	}
}
