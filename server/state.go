package server

import (
	studio "github.com/gogpu/gg-studio"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p point) studio() studio.Point { return studio.Pt(p.X, p.Y) }

type rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r rect) studio() studio.Rect {
	return studio.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

type size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// sessionState is the GET /session payload.
type sessionState struct {
	HasImage     bool           `json:"hasImage"`
	HasResult    bool           `json:"hasResult"`
	HasKey       bool           `json:"hasKey"`
	Busy         bool           `json:"busy"`
	Mode         string         `json:"mode"`
	Zoom         float64        `json:"zoom"`
	Display      size           `json:"display"`
	Container    size           `json:"container"`
	BrushSize    float64        `json:"brushSize"`
	HasMask      bool           `json:"hasMask"`
	Instruction  string         `json:"instruction"`
	ShowOriginal bool           `json:"showOriginal"`
	Selected     string         `json:"selectedId"`
	History      int            `json:"history"`
	Redo         int            `json:"redo"`
	Project      studio.Project `json:"project"`
}

// state snapshots the session. Callers hold mu.
func (s *Server) state() sessionState {
	ss := s.session
	d, c := ss.Display(), ss.Container()
	return sessionState{
		HasImage:     ss.Base() != nil,
		HasResult:    ss.Result() != nil,
		HasKey:       s.key != "",
		Busy:         ss.Busy(),
		Mode:         ss.Mode().String(),
		Zoom:         ss.Zoom(),
		Display:      size{d.Width, d.Height},
		Container:    size{c.Width, c.Height},
		BrushSize:    ss.BrushSize(),
		HasMask:      ss.HasMask(),
		Instruction:  ss.Instruction(),
		ShowOriginal: ss.ShowOriginal(),
		Selected:     ss.Selected(),
		History:      ss.HistoryLen(),
		Redo:         ss.RedoLen(),
		Project:      studio.Project{Elements: ss.Elements()},
	}
}
