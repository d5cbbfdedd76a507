// Package version parses Stream Deck application versions and checks them
// against the minimum the plugin supports.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinimumHost is the oldest Stream Deck application the plugin runs on,
// matching Software.MinimumVersion in the plugin manifest.
const MinimumHost = "6.0"

// ErrHostTooOld is returned by CheckHost for unsupported applications.
var ErrHostTooOld = errors.New("stream deck application too old")

// HostVersion is a parsed "major.minor[.patch[.build]]" application version.
type HostVersion struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses an application version. Components after the patch level
// (build numbers) are ignored.
func Parse(s string) (HostVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return HostVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	var nums [3]uint16
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.ParseUint(parts[i], 10, 16)
		if err != nil || parts[i] == "" {
			return HostVersion{}, fmt.Errorf("invalid version %q: bad component %d", s, i+1)
		}
		nums[i] = uint16(n)
	}
	return HostVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v HostVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 as v is older than, equal to or newer than
// other.
func (v HostVersion) Compare(other HostVersion) int {
	switch {
	case v.Major != other.Major:
		return cmp(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp(v.Minor, other.Minor)
	default:
		return cmp(v.Patch, other.Patch)
	}
}

// AtLeast reports whether v is minimum or newer.
func (v HostVersion) AtLeast(minimum HostVersion) bool {
	return v.Compare(minimum) >= 0
}

// CheckHost validates the application version reported in the launch
// info. An empty version is accepted: older simulators do not send one.
func CheckHost(reported string) error {
	if reported == "" {
		return nil
	}
	v, err := Parse(reported)
	if err != nil {
		return err
	}
	minimum, _ := Parse(MinimumHost)
	if !v.AtLeast(minimum) {
		return fmt.Errorf("%w: %s < %s", ErrHostTooOld, v, minimum)
	}
	return nil
}

func cmp(a, b uint16) int {
	if a < b {
		return -1
	}
	return 1
}
