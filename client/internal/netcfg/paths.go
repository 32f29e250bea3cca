package netcfg

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "default"
	}
	return s
}

// profileID picks a per-binary profile:
// 1) AIRSPACE_PROFILE env (e.g., "dev", "tui")
// 2) <exeBase>-<hash8 of full exe path>
func profileID() string {
	if p := strings.TrimSpace(os.Getenv("AIRSPACE_PROFILE")); p != "" {
		return sanitize(p)
	}
	exe, _ := os.Executable()
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	sum := sha1.Sum([]byte(exe))
	return sanitize(base) + "-" + hex.EncodeToString(sum[:])[:8]
}

// ConfigDir = OS config dir / Airspace / profileID()
//
//	Linux:   ~/.config/Airspace/<profile>/
//	macOS:   ~/Library/Application Support/Airspace/<profile>/
//	Windows: %APPDATA%\Airspace\<profile>\
func ConfigDir() string {
	root, _ := os.UserConfigDir()
	if root == "" {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	dir := filepath.Join(root, "Airspace", profileID())
	_ = os.MkdirAll(dir, 0o755)
	return dir
}
