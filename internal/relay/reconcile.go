package relay

import (
	"fmt"
	"sort"

	"github.com/eleven-am/scribe-backend/internal/transcription"
)

// Reconciler converts raw recognition results into canonical segments.
// It holds at most one current segment per distinct start offset: an incoming
// final revision supersedes any interim at that offset, and an interim
// arriving after a final for the same offset is stale and dropped. It also
// remembers which offsets have been persisted so a final followed by a
// speech-final revision of the same utterance produces a single sink write.
//
// A Reconciler belongs to the single task draining the upstream event channel
// and is not safe for concurrent use.
type Reconciler struct {
	current   map[float64]*SegmentPayload
	persisted map[float64]bool
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		current:   make(map[float64]*SegmentPayload),
		persisted: make(map[float64]bool),
	}
}

// Apply reconciles one recognition result. A nil segment means the event
// carries nothing for the client (empty hypothesis or stale interim). persist
// reports whether this revision should be written to the sink. A non-nil
// error marks the event malformed; the caller logs and discards it without
// touching the session.
func (r *Reconciler) Apply(res *transcription.Result) (seg *SegmentPayload, persist bool, err error) {
	if res == nil {
		return nil, false, fmt.Errorf("nil result")
	}
	if len(res.Channel.Alternatives) == 0 {
		return nil, false, fmt.Errorf("result has no alternatives")
	}
	if res.Duration < 0 {
		return nil, false, fmt.Errorf("negative duration %f", res.Duration)
	}

	alt := res.Channel.Alternatives[0]
	if alt.Transcript == "" {
		return nil, false, nil
	}

	var speaker *string
	if len(alt.Words) > 0 && alt.Words[0].Speaker != nil {
		label := fmt.Sprintf("speaker_%d", *alt.Words[0].Speaker)
		speaker = &label
	}

	final := res.IsFinal || res.SpeechFinal

	if existing, ok := r.current[res.Start]; ok {
		if (existing.IsFinal || existing.SpeechFinal) && !final {
			// Interim revision after a final one for this offset.
			return nil, false, nil
		}
	}

	seg = &SegmentPayload{
		Text:        alt.Transcript,
		IsFinal:     res.IsFinal,
		SpeechFinal: res.SpeechFinal,
		Speaker:     speaker,
		Start:       res.Start,
		End:         res.Start + res.Duration,
	}
	r.current[res.Start] = seg

	if final && !r.persisted[res.Start] {
		r.persisted[res.Start] = true
		persist = true
	}

	return seg, persist, nil
}

// Segments returns the client-visible aggregate view: the latest revision per
// start offset, ordered by offset.
func (r *Reconciler) Segments() []*SegmentPayload {
	out := make([]*SegmentPayload, 0, len(r.current))
	for _, seg := range r.current {
		out = append(out, seg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
