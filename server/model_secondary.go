package server

import (
	"fmt"
)

const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

func (s SearchSessionState) Name() string {
	switch s {
	case SS_NEW:
		return "SS_NEW"
	case SS_SEARCH:
		return "SS_SEARCH"
	case SS_OVER:
		return "SS_OVER"
	case SS_ERR:
		return "SS_ERR"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

// SessionRequest hands a new session to SearchServer.Loop. Accepted is closed
// once the session is registered.
type SessionRequest struct {
	Session  *SearchSession
	Accepted chan struct{}
}
