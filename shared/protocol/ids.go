package protocol

import "net/url"

// REST paths, relative to the API base.
const (
	PathAircraft  = "/aircraft"
	PathConflicts = "/conflicts"
	PathGameState = "/gamestate"
	PathReset     = "/reset"
	pathTap       = "/tap/"
)

func TapPath(id string) string {
	return pathTap + url.PathEscape(id)
}
