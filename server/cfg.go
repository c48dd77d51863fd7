package server

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pathviz/model"
)

// LoadLayout reads the layout searched for clients that send an empty one.
// The file is parsed once here so a broken file fails at startup.
func (s *SearchServer) LoadLayout(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}
	board, err := model.ParseLayout(bytes.NewReader(data), s.Width)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.DefaultLayout = string(data)
	log.Infof("default layout %s loaded, %d rows", path, board.Grid.Rows)
	return nil
}
