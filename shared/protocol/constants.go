package protocol

const (
	GameName = "Airspace"

	// Simulation space. The server wraps aircraft inside this box.
	ScreenW = 800
	ScreenH = 600

	// Client poll cadence
	PollIntervalMs = 100

	// Where the new-aircraft key spawns traffic: the center of the scope.
	DefaultSpawnX = 400.0
	DefaultSpawnY = 300.0
)
