package relay

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eleven-am/scribe-backend/internal/metrics"
	"github.com/eleven-am/scribe-backend/internal/shared"
	"github.com/eleven-am/scribe-backend/internal/transcription"
	"github.com/gorilla/websocket"
)

// State is the lifecycle of one relay session. Closed and Failed are
// terminal; inbound client data in a terminal state is discarded, never
// forwarded upstream.
type State int32

const (
	StateConnecting State = iota
	StateAccepted
	StateUpstreamStarting
	StateActive
	StateClosing
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAccepted:
		return "accepted"
	case StateUpstreamStarting:
		return "upstream_starting"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	defaultStartTimeout  = 10 * time.Second
	defaultFinishTimeout = 5 * time.Second
	persistTimeout       = 5 * time.Second
)

// SessionConfig is fixed when the session starts; the upstream options are
// not renegotiable mid-session.
type SessionConfig struct {
	TranscriptionID string
	Options         transcription.SessionOptions
	StartTimeout    time.Duration
	FinishTimeout   time.Duration
}

// Session relays one client connection. It owns exactly one upstream live
// session for its lifetime: client audio flows up, recognition events flow
// down through the reconciler, and teardown of both sides runs exactly once
// on every exit path.
type Session struct {
	key    string
	cfg    SessionConfig
	conn   *ClientConn
	dialer transcription.Dialer
	sink   SegmentSink
	pub    LivePublisher
	stats  *metrics.Metrics
	logger *slog.Logger

	state    atomic.Int32
	upstream transcription.LiveSession
	rec      *Reconciler

	teardownOnce sync.Once
	pumpDone     chan struct{}
}

func NewSession(
	cfg SessionConfig,
	conn *ClientConn,
	dialer transcription.Dialer,
	sink SegmentSink,
	pub LivePublisher,
	stats *metrics.Metrics,
	logger *slog.Logger,
) *Session {
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = defaultStartTimeout
	}
	if cfg.FinishTimeout <= 0 {
		cfg.FinishTimeout = defaultFinishTimeout
	}

	s := &Session{
		key:      shared.NewID("sess_"),
		cfg:      cfg,
		conn:     conn,
		dialer:   dialer,
		sink:     sink,
		pub:      pub,
		stats:    stats,
		logger:   logger.With("session", cfg.TranscriptionID),
		rec:      NewReconciler(),
		pumpDone: make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))
	return s
}

func (s *Session) Key() string {
	return s.key
}

func (s *Session) TranscriptionID() string {
	return s.cfg.TranscriptionID
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// fail moves to the terminal Failed state; Closed never overwrites it.
func (s *Session) fail() {
	s.setState(StateFailed)
	if s.stats != nil {
		s.stats.SessionsFailed.Inc()
	}
}

// Run drives the session to completion: the client handshake has already been
// accepted by the caller, so startup failures are reported over the open
// channel rather than silently dropped. Run returns only after both sides are
// torn down.
func (s *Session) Run(ctx context.Context) {
	s.setState(StateAccepted)
	go s.conn.writePump()
	defer s.Shutdown()

	s.setState(StateUpstreamStarting)
	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.StartTimeout)
	upstream, err := s.dialer.Dial(dialCtx, s.cfg.Options)
	cancel()
	if err != nil {
		s.logger.Error("failed to start upstream session", "error", err)
		_ = s.conn.Send(ErrorMessage("could not connect to transcription service: " + err.Error()))
		s.fail()
		s.conn.CloseWith(CloseUpstreamInitError, "transcription service unavailable")
		s.awaitClientGone()
		return
	}
	s.upstream = upstream

	s.setState(StateActive)
	if s.stats != nil {
		s.stats.SessionsStarted.Inc()
	}
	s.deliver(StatusMessage("transcription service connected, ready for audio"))
	s.logger.Info("session active")

	go s.pumpUpstream()
	s.readClient()
}

// readClient is the inbound flow: binary frames are forwarded verbatim and in
// order; text frames are reserved for a future control channel. It returns
// when the client transport goes away for any reason.
func (s *Session) readClient() {
	s.conn.configureRead()

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Debug("client read ended", "error", err)
			}
			return
		}

		if s.State() != StateActive {
			continue
		}

		switch messageType {
		case websocket.BinaryMessage:
			if err := s.upstream.SendAudio(data); err != nil {
				s.logger.Warn("failed to forward audio upstream", "error", err)
				continue
			}
			if s.stats != nil {
				s.stats.AudioBytesForwarded.Add(float64(len(data)))
			}
		case websocket.TextMessage:
			s.logger.Debug("ignoring text frame", "bytes", len(data))
		}
	}
}

// awaitClientGone drains the client socket until it closes, so the close
// frame queued behind pending envelopes is actually delivered.
func (s *Session) awaitClientGone() {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pumpUpstream is the outbound flow: the single consumer of the upstream
// event channel, preserving upstream production order end to end.
func (s *Session) pumpUpstream() {
	defer close(s.pumpDone)

	for evt := range s.upstream.Events() {
		switch evt.Kind {
		case transcription.EventTranscript:
			s.handleResult(evt.Result)
		case transcription.EventSpeechStarted:
			s.deliver(EventMessage(EventSpeechStarted))
		case transcription.EventUtteranceEnd:
			s.deliver(EventMessage(EventUtteranceEnd))
		case transcription.EventError:
			s.logger.Error("upstream session error", "error", evt.Err)
			s.deliver(ErrorMessage("transcription service error: " + evt.Err.Error()))
			s.fail()
			s.conn.CloseWith(CloseInternalError, "transcription service error")
			return
		case transcription.EventClosed:
			return
		}
	}
}

// handleResult reconciles one recognition event. A malformed event is logged
// and discarded; it never terminates the session.
func (s *Session) handleResult(res *transcription.Result) {
	seg, persist, err := s.rec.Apply(res)
	if err != nil {
		s.logger.Error("discarding malformed recognition event", "error", err)
		if s.stats != nil {
			s.stats.EventsDiscarded.Inc()
		}
		return
	}
	if seg == nil {
		return
	}

	s.deliver(SegmentMessage(seg))
	if s.stats != nil {
		s.stats.SegmentsForwarded.Inc()
	}

	if persist {
		s.persist(seg)
	}
}

// persist writes a finalized segment to the sink. Sink failures are logged
// and swallowed; they never alter relay state or client-visible behavior.
func (s *Session) persist(seg *SegmentPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := s.sink.AppendSegment(ctx, s.cfg.TranscriptionID, seg.Text, seg.Speaker, seg.Start, seg.End, seg.IsFinal, seg.SpeechFinal)
	if err != nil {
		s.logger.Error("failed to persist segment",
			"error", err,
			"transcription_id", s.cfg.TranscriptionID,
			"start", seg.Start)
		if s.stats != nil {
			s.stats.PersistErrors.Inc()
		}
		return
	}
	if s.stats != nil {
		s.stats.SegmentsPersisted.Inc()
	}
}

// deliver sends an envelope to the client and mirrors it to the live
// publisher. Publish failures are logged and never affect the relay.
func (s *Session) deliver(msg *ClientMessage) {
	if err := s.conn.Send(msg); err != nil {
		s.logger.Debug("client send after close", "type", msg.Type)
	}

	if s.pub != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		if err := s.pub.Publish(ctx, s.cfg.TranscriptionID, msg); err != nil {
			s.logger.Warn("failed to publish live message", "error", err)
		}
		cancel()
	}
}

// Shutdown tears down both sides exactly once: graceful upstream drain
// bounded by the finish timeout, then the client socket. Safe on a session
// whose upstream never started, and idempotent.
func (s *Session) Shutdown() {
	s.teardownOnce.Do(func() {
		if s.State() != StateFailed {
			s.setState(StateClosing)
		}

		if s.upstream != nil {
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FinishTimeout)
			if err := s.upstream.Finish(ctx); err != nil {
				s.logger.Warn("upstream finish did not complete cleanly", "error", err)
			}
			cancel()
			<-s.pumpDone
		}

		_ = s.conn.Close()

		if s.State() != StateFailed {
			s.setState(StateClosed)
		}
		s.logger.Info("session torn down", "state", s.State().String())
	})
}
