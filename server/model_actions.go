package server

import (
	"context"
	"encoding/gob"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/astar"
	"github.com/zucenko/pathviz/internal/runner"
	"github.com/zucenko/pathviz/model"
)

func NewSearchServer(width int, stepDelay time.Duration) *SearchServer {
	return &SearchServer{
		Upgrader:   &websocket.Upgrader{},
		Width:      width,
		StepDelay:  stepDelay,
		sessions:   make(map[string]*SearchSession),
		register:   make(chan SessionRequest),
		unregister: make(chan *SearchSession),
		counts:     make(chan chan int),
	}
}

// Loop owns the session registry. When ctx is done every live search is
// cancelled and Loop returns.
func (s *SearchServer) Loop(ctx context.Context) {
	log.Printf("SearchServer.Loop starting")
	for {
		select {
		case req := <-s.register:
			s.sessions[req.Session.Id] = req.Session
			close(req.Accepted)
			log.WithField("session", req.Session.Id).Debugf("SearchServer.Loop registered, %d live", len(s.sessions))
		case ss := <-s.unregister:
			delete(s.sessions, ss.Id)
			log.WithField("session", ss.Id).Debugf("SearchServer.Loop unregistered, %d live", len(s.sessions))
		case reply := <-s.counts:
			reply <- len(s.sessions)
		case <-ctx.Done():
			log.Infof("SearchServer.Loop stopping, cancelling %d sessions", len(s.sessions))
			for _, ss := range s.sessions {
				ss.cancel()
			}
			return
		}
	}
}

// Sessions reports the number of live sessions, or -1 when Loop is not
// running.
func (s *SearchServer) Sessions() int {
	reply := make(chan int, 1)
	select {
	case s.counts <- reply:
	case <-time.After(time.Second):
		return -1
	}
	return <-reply
}

func (s *SearchServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		ss := &SearchSession{
			State:          SS_NEW,
			Id:             uuid.New().String(),
			Server:         s,
			requests:       make(chan model.ClientMessage, 1),
			cancel:         cancel,
			MessagesToSend: make(chan model.ServerMessage, 16),
			written:        make(chan struct{}),
		}

		accepted := make(chan struct{})
		select {
		case s.register <- SessionRequest{Session: ss, Accepted: accepted}:
			<-accepted
		case <-time.After(timeout):
			log.Warn("HandleHttpCall register TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		defer s.remove(ss, timeout)

		conn, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already replied
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer conn.Close()
		ss.Conn = conn
		ss.handlePings()

		go ss.LoopChannelRead()
		go ss.LoopChannelWrite()
		ss.Serve(ctx)
		close(ss.MessagesToSend)
		<-ss.written

		log.WithFields(log.Fields{
			"session": ss.Id,
			"state":   ss.State.Name(),
			"out":     ss.DebugOutMessages,
		}).Info("HandleHttpCall session over")
	}
}

func (s *SearchServer) remove(ss *SearchSession, timeout time.Duration) {
	select {
	case s.unregister <- ss:
	case <-time.After(timeout):
		log.WithField("session", ss.Id).Warn("unregister TIMEOUTED")
	}
}

func (ss *SearchSession) handlePings() {
	conn := ss.Conn
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ss.DebugLastPing = time.Now()
			ss.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
}

// Serve waits for the client's layout, runs the search and queues a Setup,
// the Frames and a Finish. It returns early when ctx is done.
func (ss *SearchSession) Serve(ctx context.Context) {
	var cm model.ClientMessage
	select {
	case cm = <-ss.requests:
	case <-ctx.Done():
		ss.State = SS_ERR
		return
	}
	logger := log.WithField("session", ss.Id)

	layout := cm.Layout
	if strings.TrimSpace(layout) == "" {
		layout = ss.Server.DefaultLayout
	}
	board, err := model.ParseLayout(strings.NewReader(layout), ss.Server.Width)
	if err != nil {
		logger.Warnf("Serve bad layout: %v", err)
		ss.State = SS_ERR
		ss.send(ctx, finishMessage(astar.Result{}, err))
		return
	}
	ss.Runner = runner.New(board)
	if err := ss.Runner.Start(ctx); err != nil {
		logger.Warnf("Serve cannot start: %v", err)
		ss.State = SS_ERR
		ss.send(ctx, finishMessage(astar.Result{}, err))
		return
	}
	ss.State = SS_SEARCH

	var before []model.Tag
	ss.Runner.View(func(b *model.Board) { before = b.Grid.Tags() })
	rows := board.Grid.Rows
	ss.send(ctx, model.ServerMessage{Setup: []model.Setup{{SessionId: ss.Id, Rows: rows, Tags: before}}})

	applied := 0
	for ss.Runner.Step() {
		applied++
		var after []model.Tag
		ss.Runner.View(func(b *model.Board) { after = b.Grid.Tags() })
		changes := model.Diff(rows, before, after)
		before = after
		if len(changes) == 0 {
			continue
		}
		if !ss.send(ctx, model.ServerMessage{Frames: []model.Frame{{Step: applied, Changes: changes}}}) {
			break
		}
		if !ss.pause(ctx) {
			break
		}
	}
	<-ss.Runner.Done()

	res, err := ss.Runner.Last()
	if ctx.Err() != nil {
		logger.Info("Serve search cancelled")
		ss.State = SS_ERR
		return
	}
	ss.State = SS_OVER
	ss.send(ctx, finishMessage(res, err))
}

func (ss *SearchSession) pause(ctx context.Context) bool {
	if ss.Server.StepDelay > 0 {
		timer := time.NewTimer(ss.Server.StepDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false
		}
	}
	return ctx.Err() == nil
}

func (ss *SearchSession) send(ctx context.Context, mes model.ServerMessage) bool {
	select {
	case ss.MessagesToSend <- mes:
		return true
	case <-ctx.Done():
		return false
	}
}

func finishMessage(res astar.Result, err error) model.ServerMessage {
	finish := model.Finish{Found: res.Found, Path: res.Path, Expanded: res.Expanded, Steps: res.Steps}
	if err != nil {
		finish.Error = err.Error()
	}
	return model.ServerMessage{Finish: []model.Finish{finish}}
}

// LoopChannelRead decodes client messages until the socket fails. A failed
// socket cancels the session.
func (ss *SearchSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
	defer ss.cancel()
	for {
		messageType, r, err := ss.Conn.NextReader()
		if err != nil {
			log.Debugf("LoopChannelRead err reading message from Conn %v", err)
			break
		}
		log.Debugf("LoopChannelRead received message type: %d", messageType)
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			break
		}
		ss.DebugInMessages++

		select {
		case ss.requests <- cm:
		default:
			log.Warnf("LoopChannelRead dropping message, a search was already requested")
		}
	}
	log.Printf("LoopChannelRead ENDED")
}

// LoopChannelWrite encodes queued messages until MessagesToSend is closed,
// then closes the socket politely.
func (ss *SearchSession) LoopChannelWrite() {
	log.Printf("LoopChannelWrite STARTED")
	defer close(ss.written)
	for mes := range ss.MessagesToSend {
		if err := ss.write(mes); err != nil {
			log.Warnf("LoopChannelWrite %v", err)
			ss.cancel()
			for range ss.MessagesToSend {
			}
			return
		}
		ss.DebugOutMessages++
	}
	err := ss.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	if err != nil {
		log.Debugf("LoopChannelWrite close %v", err)
	}
	log.Printf("LoopChannelWrite ENDED")
}

func (ss *SearchSession) write(mes model.ServerMessage) error {
	w, err := ss.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return err
	}
	return w.Close()
}
