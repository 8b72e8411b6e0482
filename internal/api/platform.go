package api

import "strings"

var platformRoutes = map[string]string{
	"kr":   "kr",
	"na":   "na1",
	"euw":  "euw1",
	"eune": "eun1",
	"jp":   "jp1",
}

// PlatformRoute maps a shorthand region to its platform host prefix.
// Unknown values pass through unchanged so full route ids like "br1" still
// work.
func PlatformRoute(platform string) string {
	p := strings.TrimSpace(platform)
	if route, ok := platformRoutes[strings.ToLower(p)]; ok {
		return route
	}
	return p
}
