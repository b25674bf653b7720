package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

const eventBufferSize = 64

// closeStream is the control message Deepgram expects before a graceful
// shutdown; the server flushes pending results and closes the socket.
var closeStream = []byte(`{"type":"CloseStream"}`)

type serverMessage struct {
	Type        string  `json:"type"`
	IsFinal     bool    `json:"is_final"`
	SpeechFinal bool    `json:"speech_final"`
	Start       float64 `json:"start"`
	Duration    float64 `json:"duration"`
	Channel     Channel `json:"channel"`
	Description string  `json:"description"`
	Message     string  `json:"message"`
}

// Client is a live transcription session over the Deepgram listen WebSocket.
// Wire messages are translated into an ordered event channel consumed by a
// single task; the channel closes when the upstream socket does.
type Client struct {
	ws     *websocket.Conn
	logger *slog.Logger
	events chan Event

	mu        sync.Mutex
	closed    bool
	finishing bool
	done      chan struct{}
	closeOnce sync.Once
}

type LiveDialer struct {
	cfg    Config
	logger *slog.Logger
}

func NewLiveDialer(cfg Config, logger *slog.Logger) *LiveDialer {
	return &LiveDialer{
		cfg:    cfg,
		logger: logger.With("component", "deepgram"),
	}
}

func (d *LiveDialer) Dial(ctx context.Context, opts SessionOptions) (LiveSession, error) {
	u, err := url.Parse(d.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse listen url: %w", err)
	}

	q := u.Query()
	q.Set("model", opts.Model)
	q.Set("language", opts.Language)
	q.Set("encoding", opts.Encoding)
	q.Set("sample_rate", strconv.Itoa(opts.SampleRate))
	q.Set("channels", strconv.Itoa(opts.Channels))
	q.Set("punctuate", strconv.FormatBool(opts.Punctuate))
	q.Set("interim_results", strconv.FormatBool(opts.InterimResults))
	q.Set("diarize", strconv.FormatBool(opts.Diarize))
	q.Set("smart_format", strconv.FormatBool(opts.SmartFormat))
	u.RawQuery = q.Encode()

	header := http.Header{}
	if d.cfg.APIKey != "" {
		header.Set("Authorization", "Token "+d.cfg.APIKey)
	}

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial listen endpoint: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial listen endpoint: %w", err)
	}

	c := &Client{
		ws:     ws,
		logger: d.logger,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}

	go c.readLoop()

	d.logger.Info("live session opened",
		"model", opts.Model,
		"language", opts.Language,
		"encoding", opts.Encoding,
		"sample_rate", opts.SampleRate)
	return c, nil
}

func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) SendAudio(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.finishing {
		return fmt.Errorf("session closed")
	}
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

func (c *Client) readLoop() {
	defer close(c.events)
	defer close(c.done)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.mu.Lock()
			expected := c.closed || c.finishing
			c.mu.Unlock()

			if expected || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.events <- Event{Kind: EventClosed}
				return
			}

			c.logger.Error("live session read error", "error", err)
			c.events <- Event{Kind: EventError, Err: err}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Error("failed to unmarshal live message", "error", err)
			continue
		}

		switch msg.Type {
		case "Results":
			c.events <- Event{Kind: EventTranscript, Result: &Result{
				IsFinal:     msg.IsFinal,
				SpeechFinal: msg.SpeechFinal,
				Start:       msg.Start,
				Duration:    msg.Duration,
				Channel:     msg.Channel,
			}}
		case "SpeechStarted":
			c.events <- Event{Kind: EventSpeechStarted}
		case "UtteranceEnd":
			c.events <- Event{Kind: EventUtteranceEnd}
		case "Error":
			reason := msg.Description
			if reason == "" {
				reason = msg.Message
			}
			c.events <- Event{Kind: EventError, Err: fmt.Errorf("upstream error: %s", reason)}
			return
		case "Metadata":
			// End-of-stream bookkeeping; nothing for the consumer.
		default:
			c.logger.Debug("ignoring unhandled live message", "type", msg.Type)
		}
	}
}

// Finish asks the upstream to flush pending results and waits for the socket
// to close, bounded by ctx. Safe to call more than once.
func (c *Client) Finish(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	alreadyFinishing := c.finishing
	c.finishing = true
	var writeErr error
	if !alreadyFinishing {
		writeErr = c.ws.WriteMessage(websocket.TextMessage, closeStream)
	}
	c.mu.Unlock()

	if writeErr != nil {
		return c.Close()
	}

	select {
	case <-c.done:
		return c.Close()
	case <-ctx.Done():
		_ = c.Close()
		return ctx.Err()
	}
}

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		err = c.ws.Close()
	})
	return err
}
