package registry

import (
	"regexp"
	"strings"
)

// keyStrip removes every rune outside the key-safe set.
var keyStrip = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// micro maps the micro-sign variants that show up in imagery band names
// (e.g. "3.9 µm") to plain ASCII before stripping.
var micro = strings.NewReplacer("µ", "m", "μ", "m", " ", "_")

// Canonicalize normalizes a view name into a stable, filesystem-safe key:
// micro signs become "m", spaces become underscores, and anything outside
// [A-Za-z0-9_-] is dropped. The strip is deliberately ASCII-only: accented
// or other non-ASCII letters are dropped rather than preserved, so keys
// stay portable across filesystems and selector configs.
func Canonicalize(name string) string {
	return keyStrip.ReplaceAllString(micro.Replace(name), "")
}

// BuildViewKey assembles the canonical "satellite_sector_imagery" key used
// throughout the registry and selector config.
func BuildViewKey(sat, sector, imagery string) string {
	return Canonicalize(sat + "_" + sector + "_" + imagery)
}
