package transcription

import "context"

// LiveSession is one streaming recognition session. It is owned by exactly one
// consumer; SendAudio and Finish must not be called after Close.
type LiveSession interface {
	SendAudio(data []byte) error
	Events() <-chan Event
	Finish(ctx context.Context) error
	Close() error
}

// Dialer opens live sessions. A failed Dial leaves no partial session behind.
type Dialer interface {
	Dial(ctx context.Context, opts SessionOptions) (LiveSession, error)
}
