package main

import (
	"github.com/eleven-am/scribe-backend/internal/bootstrap"
)

// @title Scribe Backend API
// @version 1.0.0
// @description Live transcription relay: streams browser audio to Deepgram and relays recognition events back over WebSocket, persisting finalized segments.

// @host localhost:8080
// @BasePath /v1

func main() {
	bootstrap.Run()
}
