package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"equity-backtest/internal/model"
)

// Source provides bar history for one symbol over a window.
type Source interface {
	History(symbol string, resolution model.Resolution, start, end time.Time) ([]model.Bar, error)
}

// BarFile matches the JSON shape of a stored history file:
//
//	{
//	  "symbol": "SPY",
//	  "resolution": "minute",
//	  "bars": [ ... ]
//	}
type BarFile struct {
	Symbol     string           `json:"symbol"`
	Resolution model.Resolution `json:"resolution"`
	Bars       []model.Bar      `json:"bars"`
}

func LoadBarFile(path string) (*BarFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f BarFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FileSource serves history from per-symbol JSON files in a directory,
// named <symbol>.json (lowercase).
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) History(symbol string, resolution model.Resolution, start, end time.Time) ([]model.Bar, error) {
	path := filepath.Join(s.Dir, strings.ToLower(symbol)+".json")
	f, err := LoadBarFile(path)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", symbol, err)
	}
	if f.Resolution != "" && f.Resolution != resolution {
		return nil, fmt.Errorf("history for %s is %s resolution, want %s", symbol, f.Resolution, resolution)
	}

	out := make([]model.Bar, 0, len(f.Bars))
	for _, b := range f.Bars {
		if b.Start.Before(start) || b.End.After(end) {
			continue
		}
		if b.Symbol == "" {
			b.Symbol = f.Symbol
		}
		out = append(out, b)
	}
	return out, nil
}
