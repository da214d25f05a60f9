package promo

import (
	"fmt"
	"net/url"
	"strings"
)

// Platform is a supported social network
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

// Valid reports whether the platform is supported
func (p Platform) Valid() bool {
	return p == PlatformFacebook || p == PlatformInstagram
}

// Domain returns the hostname fragment a proof URL must contain
func (p Platform) Domain() string {
	switch p {
	case PlatformFacebook:
		return "facebook.com"
	case PlatformInstagram:
		return "instagram.com"
	default:
		return ""
	}
}

// TaskType categorizes promotional activities. URL-proof types carry a
// fixed point value; screenshot-proof types earn one point per screenshot,
// adjustable by the admin up to double at review time.
type TaskType string

const (
	TaskHandCheck    TaskType = "hand-check"
	TaskVideoContent TaskType = "video-content"
	TaskGroupShare   TaskType = "group-share"
	TaskHypeComment  TaskType = "hype-comment"
)

// MaxScreenshots caps the screenshot set on one submission
const MaxScreenshots = 10

// Valid reports whether the task type is known
func (t TaskType) Valid() bool {
	switch t {
	case TaskHandCheck, TaskVideoContent, TaskGroupShare, TaskHypeComment:
		return true
	}
	return false
}

// RequiresURL reports whether proof is a post link
func (t TaskType) RequiresURL() bool {
	return t == TaskHandCheck || t == TaskVideoContent
}

// RequiresScreenshots reports whether proof is a screenshot set
func (t TaskType) RequiresScreenshots() bool {
	return t == TaskGroupShare || t == TaskHypeComment
}

// FixedPoints returns the fixed award for URL-proof types, 0 otherwise
func (t TaskType) FixedPoints() int {
	switch t {
	case TaskHandCheck:
		return 15
	case TaskVideoContent:
		return 25
	default:
		return 0
	}
}

// IsValidURL reports whether raw parses as an http(s) URL whose host
// belongs to the given platform
func IsValidURL(raw string, platform Platform) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	domain := platform.Domain()
	if domain == "" {
		return false
	}
	return strings.Contains(u.Hostname(), domain)
}

// SuggestedPoints is the award surfaced to the admin before review
func SuggestedPoints(t TaskType, screenshotCount int) int {
	if t.RequiresScreenshots() {
		return screenshotCount
	}
	return t.FixedPoints()
}

// MaxPoints is the largest award an admin may grant for a submission
func MaxPoints(t TaskType, screenshotCount int) int {
	if t.RequiresScreenshots() {
		return 2 * screenshotCount
	}
	return t.FixedPoints()
}

// ValidateIntake checks a submission before any write happens.
// Failures here mean nothing was stored.
func ValidateIntake(t TaskType, platform Platform, postURL string, screenshots []string) error {
	if !platform.Valid() {
		return fmt.Errorf("unsupported platform %q", platform)
	}
	if !t.Valid() {
		return fmt.Errorf("unsupported task type %q", t)
	}
	if t.RequiresURL() {
		if postURL == "" {
			return fmt.Errorf("%s submissions require a post URL", t)
		}
		if !IsValidURL(postURL, platform) {
			return fmt.Errorf("please enter a valid %s URL", platform)
		}
		return nil
	}
	if len(screenshots) == 0 {
		return fmt.Errorf("%s submissions require at least one screenshot", t)
	}
	if len(screenshots) > MaxScreenshots {
		return fmt.Errorf("at most %d screenshots allowed", MaxScreenshots)
	}
	return nil
}

// ValidateAward checks an admin-chosen point value against the task policy.
// URL-proof types award their fixed value; screenshot-proof types accept
// 1 up to twice the screenshot count.
func ValidateAward(t TaskType, screenshotCount, points int) error {
	if points < 0 {
		return fmt.Errorf("points must be a non-negative integer")
	}
	if t.RequiresScreenshots() {
		max := MaxPoints(t, screenshotCount)
		if points < 1 || points > max {
			return fmt.Errorf("points for %s must be between 1 and %d", t, max)
		}
		return nil
	}
	if fixed := t.FixedPoints(); points != fixed {
		return fmt.Errorf("%s awards a fixed %d points", t, fixed)
	}
	return nil
}
