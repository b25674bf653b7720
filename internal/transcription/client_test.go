package transcription

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() SessionOptions {
	return SessionOptions{
		Model:          "nova-2",
		Language:       "en",
		Encoding:       "linear16",
		SampleRate:     16000,
		Channels:       1,
		Punctuate:      true,
		InterimResults: true,
		Diarize:        true,
		SmartFormat:    true,
	}
}

// startFakeUpstream runs handler for each accepted websocket and returns a
// dialer pointed at it.
func startFakeUpstream(t *testing.T, apiKey string, handler func(ws *websocket.Conn, r *http.Request)) *LiveDialer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		handler(ws, r)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{
		URL:    "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/listen",
		APIKey: apiKey,
	}
	return NewLiveDialer(cfg, testLogger())
}

func nextEvent(t *testing.T, sess LiveSession) Event {
	t.Helper()
	select {
	case evt, ok := <-sess.Events():
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestLiveDialer_Dial_SendsOptionsAndAuth(t *testing.T) {
	type connectInfo struct {
		query url.Values
		auth  string
	}
	connected := make(chan connectInfo, 1)

	dialer := startFakeUpstream(t, "secret-key", func(ws *websocket.Conn, r *http.Request) {
		connected <- connectInfo{
			query: r.URL.Query(),
			auth:  r.Header.Get("Authorization"),
		}
		// Hold the socket open until the client hangs up.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	sess, err := dialer.Dial(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.Close()

	info := <-connected
	if info.auth != "Token secret-key" {
		t.Errorf("expected Token auth header, got '%s'", info.auth)
	}
	for key, want := range map[string]string{
		"model":           "nova-2",
		"language":        "en",
		"encoding":        "linear16",
		"sample_rate":     "16000",
		"channels":        "1",
		"punctuate":       "true",
		"interim_results": "true",
		"diarize":         "true",
		"smart_format":    "true",
	} {
		if got := info.query.Get(key); got != want {
			t.Errorf("expected %s=%s, got '%s'", key, want, got)
		}
	}
}

func TestClient_TranslatesResults(t *testing.T) {
	dialer := startFakeUpstream(t, "", func(ws *websocket.Conn, r *http.Request) {
		msgs := []string{
			`{"type":"SpeechStarted"}`,
			`{"type":"Results","is_final":false,"start":0,"duration":0.5,"channel":{"alternatives":[{"transcript":"hel"}]}}`,
			`{"type":"Results","is_final":true,"speech_final":true,"start":0,"duration":1.0,"channel":{"alternatives":[{"transcript":"hello.","words":[{"word":"hello.","start":0,"end":1.0,"speaker":0}]}]}}`,
			`{"type":"UtteranceEnd"}`,
			`{"type":"Metadata","duration":1.0}`,
		}
		for _, msg := range msgs {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	sess, err := dialer.Dial(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.Close()

	if evt := nextEvent(t, sess); evt.Kind != EventSpeechStarted {
		t.Errorf("expected speech started, got %v", evt.Kind)
	}

	evt := nextEvent(t, sess)
	if evt.Kind != EventTranscript {
		t.Fatalf("expected transcript event, got %v", evt.Kind)
	}
	if evt.Result.IsFinal || evt.Result.Duration != 0.5 {
		t.Errorf("unexpected interim result: %+v", evt.Result)
	}
	if got := evt.Result.Channel.Alternatives[0].Transcript; got != "hel" {
		t.Errorf("expected transcript 'hel', got '%s'", got)
	}

	evt = nextEvent(t, sess)
	if evt.Kind != EventTranscript {
		t.Fatalf("expected transcript event, got %v", evt.Kind)
	}
	if !evt.Result.IsFinal || !evt.Result.SpeechFinal {
		t.Errorf("expected final result, got %+v", evt.Result)
	}
	words := evt.Result.Channel.Alternatives[0].Words
	if len(words) != 1 || words[0].Speaker == nil || *words[0].Speaker != 0 {
		t.Errorf("expected speaker 0 on word, got %+v", words)
	}

	if evt := nextEvent(t, sess); evt.Kind != EventUtteranceEnd {
		t.Errorf("expected utterance end, got %v", evt.Kind)
	}
}

func TestClient_SendAudioForwardsBinary(t *testing.T) {
	audio := make(chan []byte, 1)

	dialer := startFakeUpstream(t, "", func(ws *websocket.Conn, r *http.Request) {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.BinaryMessage {
			audio <- data
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	sess, err := dialer.Dial(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.Close()

	if err := sess.SendAudio([]byte{0xde, 0xad, 0xbe, 0xef}); err != nil {
		t.Fatalf("send audio failed: %v", err)
	}

	select {
	case data := <-audio:
		if len(data) != 4 || data[0] != 0xde {
			t.Errorf("unexpected audio payload: %v", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("audio never reached the server")
	}
}

func TestClient_FinishDrainsAndCloses(t *testing.T) {
	dialer := startFakeUpstream(t, "", func(ws *websocket.Conn, r *http.Request) {
		// Expect the CloseStream control message, flush one last result,
		// then close normally.
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if !strings.Contains(string(data), "CloseStream") {
			return
		}
		_ = ws.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"Results","is_final":true,"start":0,"duration":0.3,"channel":{"alternatives":[{"transcript":"bye"}]}}`))
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = ws.Close()
	})

	sess, err := dialer.Dial(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sess.Finish(ctx); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	// The flushed result and the closed marker are still in the channel.
	sawFlushed := false
	sawClosed := false
	for evt := range sess.Events() {
		switch evt.Kind {
		case EventTranscript:
			if evt.Result.Channel.Alternatives[0].Transcript == "bye" {
				sawFlushed = true
			}
		case EventClosed:
			sawClosed = true
		}
	}
	if !sawFlushed {
		t.Error("result flushed during finish was lost")
	}
	if !sawClosed {
		t.Error("expected closed event after graceful finish")
	}

	if err := sess.SendAudio([]byte{1}); err == nil {
		t.Error("send after finish must fail")
	}
}

func TestClient_UpstreamErrorMessage(t *testing.T) {
	dialer := startFakeUpstream(t, "", func(ws *websocket.Conn, r *http.Request) {
		_ = ws.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"Error","description":"invalid audio format"}`))
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	sess, err := dialer.Dial(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer sess.Close()

	evt := nextEvent(t, sess)
	if evt.Kind != EventError {
		t.Fatalf("expected error event, got %v", evt.Kind)
	}
	if !strings.Contains(evt.Err.Error(), "invalid audio format") {
		t.Errorf("expected upstream description in error, got %v", evt.Err)
	}
}

func TestLiveDialer_DialFailure(t *testing.T) {
	dialer := NewLiveDialer(Config{URL: "ws://127.0.0.1:1/v1/listen"}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := dialer.Dial(ctx, testOptions()); err == nil {
		t.Fatal("expected dial failure against unroutable endpoint")
	}
}
