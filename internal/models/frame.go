package models

// FrameState describes one rendered background frame as sent to the client
type FrameState struct {
	Frame     uint64  `json:"frame"`
	RotationX float64 `json:"rotation_x"`
	RotationY float64 `json:"rotation_y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Aspect    float64 `json:"aspect"`
}

// BackgroundMessage is the envelope exchanged on the background websocket.
// Type is one of "resize" (client), "frame", "state" or "error" (server).
type BackgroundMessage struct {
	Type   string      `json:"type"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	State  string      `json:"state,omitempty"`
	Error  string      `json:"error,omitempty"`
	Frame  *FrameState `json:"frame,omitempty"`
}
