package protocol

// Aircraft is a single server-owned track. Heading is in degrees,
// derived server-side from atan2(velocityY, velocityX).
type Aircraft struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Heading   float64 `json:"heading"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	CallSign  string  `json:"callSign"`
}

// Conflict is a loss of separation between two aircraft. The server embeds
// full aircraft objects; clients should treat them as references by ID.
type Conflict struct {
	Aircraft1  Aircraft `json:"aircraft1"`
	Aircraft2  Aircraft `json:"aircraft2"`
	Distance   float64  `json:"distance"` // simulation units
	Resolved   bool     `json:"resolved"`
	Resolution string   `json:"resolution,omitempty"`
}

// Involves reports whether the aircraft with the given id is one of the pair.
func (c Conflict) Involves(id string) bool {
	return c.Aircraft1.ID == id || c.Aircraft2.ID == id
}

type GameState struct {
	Level    int  `json:"level"`
	GameOver bool `json:"gameOver"`
}
