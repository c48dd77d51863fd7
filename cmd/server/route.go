package main

import (
	"net/http"

	"github.com/matryer/way"
)

const URI_WS = "/search"
const URI_HEALTH = "/healthz"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.SearchServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_HEALTH, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
