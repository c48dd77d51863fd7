package server

import (
	"context"
	"encoding/gob"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/pathviz/model"
)

func startServer(t *testing.T, stepDelay time.Duration, setup ...func(*SearchServer)) (*SearchServer, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := NewSearchServer(300, stepDelay)
	for _, f := range setup {
		f(s)
	}
	go s.Loop(ctx)
	srv := httptest.NewServer(s.HandleHttpCall())
	t.Cleanup(srv.Close)
	return s, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, layout string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	w, err := conn.NextWriter(websocket.BinaryMessage)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(model.ClientMessage{Layout: layout}))
	require.NoError(t, w.Close())
	return conn
}

func receive(t *testing.T, conn *websocket.Conn) model.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, r, err := conn.NextReader()
	require.NoError(t, err)
	mes := model.ServerMessage{}
	require.NoError(t, gob.NewDecoder(r).Decode(&mes))
	return mes
}

func TestSearchStreamsFramesAndFinish(t *testing.T) {
	_, url := startServer(t, 0)
	conn := dial(t, url, "S..\n.#.\n..E\n")

	setup := receive(t, conn)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, 3, setup.Setup[0].Rows)
	assert.NotEmpty(t, setup.Setup[0].SessionId)
	tags := setup.Setup[0].Tags
	require.Len(t, tags, 9)
	assert.Equal(t, model.Start, tags[0])
	assert.Equal(t, model.Wall, tags[4])

	var finish model.Finish
	lastStep := 0
	for {
		mes := receive(t, conn)
		if len(mes.Finish) > 0 {
			finish = mes.Finish[0]
			break
		}
		require.Len(t, mes.Frames, 1)
		frame := mes.Frames[0]
		assert.Greater(t, frame.Step, lastStep)
		lastStep = frame.Step
		assert.NotEmpty(t, frame.Changes)
		for _, c := range frame.Changes {
			tags[c.Row*3+c.Col] = c.Tag
		}
	}

	assert.Empty(t, finish.Error)
	assert.True(t, finish.Found)
	assert.Len(t, finish.Path, 5)
	assert.Equal(t, model.Pos{Row: 0, Col: 0}, finish.Path[0])
	assert.Equal(t, model.Pos{Row: 2, Col: 2}, finish.Path[4])

	paths := 0
	for _, tag := range tags {
		if tag == model.Path {
			paths++
		}
	}
	assert.Equal(t, 3, paths)
	assert.Equal(t, model.Start, tags[0])
	assert.Equal(t, model.End, tags[8])

	_, _, err := conn.NextReader()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
}

func TestUnreachableEnd(t *testing.T) {
	_, url := startServer(t, 0)
	conn := dial(t, url, ".S.\n###\n.E.\n")

	require.Len(t, receive(t, conn).Setup, 1)
	for {
		mes := receive(t, conn)
		if len(mes.Finish) > 0 {
			assert.False(t, mes.Finish[0].Found)
			assert.Empty(t, mes.Finish[0].Path)
			assert.Equal(t, 3, mes.Finish[0].Expanded)
			return
		}
	}
}

func TestMalformedLayout(t *testing.T) {
	_, url := startServer(t, 0)
	conn := dial(t, url, "S..\n..E\n")

	mes := receive(t, conn)
	require.Len(t, mes.Finish, 1)
	assert.Contains(t, mes.Finish[0].Error, "malformed layout")
	assert.Empty(t, mes.Setup)
}

func TestMissingEndpoint(t *testing.T) {
	_, url := startServer(t, 0)
	conn := dial(t, url, "S..\n...\n...\n")

	mes := receive(t, conn)
	require.Len(t, mes.Finish, 1)
	assert.Contains(t, mes.Finish[0].Error, "start and end")
}

func TestDisconnectCancelsSearch(t *testing.T) {
	s, url := startServer(t, time.Hour)
	conn := dial(t, url, "S....\n.....\n.....\n.....\n....E\n")

	require.Len(t, receive(t, conn).Setup, 1)
	require.Len(t, receive(t, conn).Frames, 1)
	assert.Equal(t, 1, s.Sessions())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return s.Sessions() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestLoopStopCancelsSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSearchServer(300, time.Hour)
	go s.Loop(ctx)
	srv := httptest.NewServer(s.HandleHttpCall())
	defer srv.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"), "S..\n...\n..E\n")
	require.Len(t, receive(t, conn).Setup, 1)
	cancel()

	// the session ends without a Finish and the socket is closed
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, r, err := conn.NextReader()
		if err != nil {
			assert.False(t, isTimeout(err), "%v", err)
			return
		}
		mes := model.ServerMessage{}
		require.NoError(t, gob.NewDecoder(r).Decode(&mes))
		assert.Empty(t, mes.Finish)
	}
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "SS_SEARCH", SS_SEARCH.Name())
	assert.Equal(t, "n/a:42", SearchSessionState(42).Name())
}

func TestEmptyLayoutUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte("S.\n.E\n"), 0o644))
	_, url := startServer(t, 0, func(s *SearchServer) {
		require.NoError(t, s.LoadLayout(path))
	})

	conn := dial(t, url, "")
	setup := receive(t, conn)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, 2, setup.Setup[0].Rows)
}

func TestLoadLayoutRejectsBrokenFile(t *testing.T) {
	s := NewSearchServer(300, 0)
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte("S.\n"), 0o644))
	assert.ErrorIs(t, s.LoadLayout(path), model.ErrLayout)
	assert.Empty(t, s.DefaultLayout)

	assert.Error(t, s.LoadLayout(filepath.Join(t.TempDir(), "missing.txt")))
}
