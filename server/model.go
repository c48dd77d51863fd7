package server

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zucenko/pathviz/internal/runner"
	"github.com/zucenko/pathviz/model"
)

type SearchServer struct {
	Upgrader *websocket.Upgrader
	// Width is the pixel width boards are built with; only Gap depends on it.
	Width     int
	StepDelay time.Duration
	// DefaultLayout is searched when a client sends an empty layout.
	DefaultLayout string

	sessions   map[string]*SearchSession
	register   chan SessionRequest
	unregister chan *SearchSession
	counts     chan chan int
}

type SearchSessionState int

const (
	SS_NEW SearchSessionState = iota
	SS_SEARCH
	SS_OVER
	SS_ERR
)

type SearchSession struct {
	State  SearchSessionState
	Id     string
	Conn   *websocket.Conn
	Server *SearchServer
	Runner *runner.Runner

	requests chan model.ClientMessage
	cancel   context.CancelFunc

	MessagesToSend chan model.ServerMessage
	written        chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugLastPing    time.Time
	DebugPings       int
}
