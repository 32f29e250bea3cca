package game

var platform = "desktop"

// SetPlatform records which entry point started the game ("desktop",
// "android"). Hover highlights are only drawn where there is a mouse.
func SetPlatform(p string) {
	if p != "" {
		platform = p
	}
}

func hasMouse() bool { return platform == "desktop" }
