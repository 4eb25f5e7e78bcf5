// Package companion picks static images for the monitors that do not carry
// the live satellite view, matched to the current time of day.
//
// Images live under a static directory, optionally pre-sorted into
// manual_labels/<band>/ subdirectories. Only the time band is matched for
// now; filtering by the satellite view's geographic footprint is a
// possible later refinement once images carry location sidecars.
package companion

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
)

// Bands, in order of the day.
const (
	BandMorning   = "morning"
	BandAfternoon = "afternoon"
	BandEvening   = "evening"
)

// labelsDir is the subdirectory holding band-sorted images.
const labelsDir = "manual_labels"

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Band returns the time band for now: morning [5,12), afternoon [12,17),
// evening otherwise.
func Band(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		return BandMorning
	case h >= 12 && h < 17:
		return BandAfternoon
	default:
		return BandEvening
	}
}

// Pool lists candidate images under root for the given band. If the band
// subdirectory exists and holds images, only those are returned; otherwise
// every image under root is a candidate, so an unsorted library still
// works.
func Pool(root, band string) ([]string, error) {
	if band != "" {
		bandImgs, err := listImages(filepath.Join(root, labelsDir, band))
		if err == nil && len(bandImgs) > 0 {
			return bandImgs, nil
		}
	}
	imgs, err := listImages(root)
	if err != nil {
		return nil, fmt.Errorf("static images under %s: %w", root, err)
	}
	return imgs, nil
}

func listImages(dir string) ([]string, error) {
	var imgs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && imageExts[strings.ToLower(filepath.Ext(path))] {
			imgs = append(imgs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imgs, nil
}

// Pick returns up to n distinct images from pool in random order. The pool
// is not modified.
func Pick(pool []string, n int, rng *rand.Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
