package relay

import "context"

// Abnormal close codes sent to the client. Three distinct failures are
// distinguishable from the close frame alone.
const (
	CloseInternalError     = 4000
	CloseMissingSessionID  = 4001
	CloseUpstreamInitError = 4002
)

type MessageType string

const (
	MessageTypeStatus  MessageType = "status"
	MessageTypeError   MessageType = "error"
	MessageTypeSegment MessageType = "transcript_segment"
	MessageTypeEvent   MessageType = "event"
)

// ClientMessage is the envelope for everything the relay sends to a client:
// one JSON object per websocket message.
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

type SegmentPayload struct {
	Text        string  `json:"text"`
	IsFinal     bool    `json:"is_final"`
	SpeechFinal bool    `json:"speech_final"`
	Speaker     *string `json:"speaker"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
}

type EventPayload struct {
	Type string `json:"type"`
}

const (
	EventSpeechStarted = "speech_started"
	EventUtteranceEnd  = "utterance_end"
)

func StatusMessage(text string) *ClientMessage {
	return &ClientMessage{Type: MessageTypeStatus, Payload: text}
}

func ErrorMessage(text string) *ClientMessage {
	return &ClientMessage{Type: MessageTypeError, Payload: text}
}

func SegmentMessage(seg *SegmentPayload) *ClientMessage {
	return &ClientMessage{Type: MessageTypeSegment, Payload: seg}
}

func EventMessage(kind string) *ClientMessage {
	return &ClientMessage{Type: MessageTypeEvent, Payload: EventPayload{Type: kind}}
}

// SegmentSink records finalized segments. Implementations must tolerate
// concurrent appends from many sessions; failures are the caller's to log and
// swallow.
type SegmentSink interface {
	AppendSegment(ctx context.Context, transcriptionID, text string, speaker *string, start, end float64, isFinal, speechFinal bool) error
}

// LivePublisher fans reconciled client messages out to additional viewers of a
// session. Failures never affect the live relay.
type LivePublisher interface {
	Publish(ctx context.Context, transcriptionID string, msg *ClientMessage) error
}
