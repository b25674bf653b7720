package transcription

// Config carries the credentials and endpoint for the Deepgram live API.
type Config struct {
	URL    string
	APIKey string
}

// SessionOptions is fixed at dial time and immutable for the lifetime of a
// live session.
type SessionOptions struct {
	Model          string
	Language       string
	Encoding       string
	SampleRate     int
	Channels       int
	Punctuate      bool
	InterimResults bool
	Diarize        bool
	SmartFormat    bool
}

type EventKind string

const (
	EventTranscript    EventKind = "transcript"
	EventSpeechStarted EventKind = "speech_started"
	EventUtteranceEnd  EventKind = "utterance_end"
	EventError         EventKind = "error"
	EventClosed        EventKind = "closed"
)

type Word struct {
	Word    string  `json:"word"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker *int    `json:"speaker,omitempty"`
}

type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Result is one recognition hypothesis for a stretch of audio. Start and
// Duration are seconds relative to the beginning of the stream.
type Result struct {
	IsFinal     bool    `json:"is_final"`
	SpeechFinal bool    `json:"speech_final"`
	Start       float64 `json:"start"`
	Duration    float64 `json:"duration"`
	Channel     Channel `json:"channel"`
}

// Event is delivered on the session's event channel in the order the upstream
// produced it.
type Event struct {
	Kind   EventKind
	Result *Result
	Err    error
}
