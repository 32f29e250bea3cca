package protocol

// NewAircraft is the body of POST /aircraft.
type NewAircraft struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TapResult is the server's judgment on POST /tap/{id}. The server appends
// the full game state, so gameOver may be present as well.
type TapResult struct {
	Success  bool `json:"success"`
	Level    int  `json:"level"`
	GameOver bool `json:"gameOver,omitempty"`
}
