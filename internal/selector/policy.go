package selector

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoActiveView is returned when the configured mode cannot produce a
// usable key: manual with no active_view, rotate with an empty order, or
// rules with no rules block.
var ErrNoActiveView = errors.New("no active view")

// Resolve computes the single view key to activate. It is pure: the clock
// is a parameter and no state is touched. lastKey is the previously
// activated key ("" when there is no history) and only matters in rotate
// mode. Whether the resolved key actually exists in the registry is the
// caller's concern.
func Resolve(cfg Config, lastKey string, now time.Time) (string, error) {
	switch ParseMode(cfg.Mode) {
	case ModeRotate:
		return resolveRotate(cfg.RotateOrder, lastKey)
	case ModeRules:
		return resolveRules(cfg.Rules, now)
	default:
		if cfg.ActiveView == "" {
			return "", fmt.Errorf("%w: manual mode with no active_view", ErrNoActiveView)
		}
		return cfg.ActiveView, nil
	}
}

// resolveRotate returns the cyclic successor of lastKey in order. A lastKey
// that is unset or no longer present in the order is treated as "no
// history" and restarts at the first element, so editing the order never
// strands the rotation.
func resolveRotate(order []string, lastKey string) (string, error) {
	if len(order) == 0 {
		return "", fmt.Errorf("%w: rotate mode with empty rotate_order", ErrNoActiveView)
	}
	for i, key := range order {
		if key == lastKey {
			return order[(i+1)%len(order)], nil
		}
	}
	return order[0], nil
}

// resolveRules picks the view for the local hour of now. Precedence is
// strictly night > twilight > day; the windows are deliberately not
// normalized against each other (Load warns on overlap).
func resolveRules(r *Rules, now time.Time) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: rules mode with no rules", ErrNoActiveView)
	}
	h := now.Hour()
	switch {
	case nightAt(r, h):
		return r.NightView, nil
	case twilightAt(r, h):
		return r.TwilightView, nil
	default:
		return r.DayView, nil
	}
}

// nightAt evaluates the wraparound night window. The OR is what lets
// [19, 5] span midnight; a non-wrapping pair is evaluated with the same
// expression, so supplying a sensible pair is the config author's job.
func nightAt(r *Rules, h int) bool {
	return h >= r.NightHours[0] || h < r.NightHours[1]
}

// twilightAt reports whether h falls in either twilight window [a,b) or [c,d).
func twilightAt(r *Rules, h int) bool {
	t := r.TwilightHours
	return (h >= t[0] && h < t[1]) || (h >= t[2] && h < t[3])
}
