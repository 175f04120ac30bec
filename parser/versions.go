package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed openapi version string.
type Version struct {
	Major int
	Minor int
	Patch int
	// Pre is the pre-release suffix without the leading '-', e.g. "rc1".
	Pre string
}

// supportedSeries lists the major.minor series the loader understands.
var supportedSeries = map[[2]int]bool{
	{3, 0}: true,
	{3, 1}: true,
	{3, 2}: true,
}

// ParseVersion parses "3.0.3", "3.1", or "3.1.0-rc1".
func ParseVersion(s string) (Version, error) {
	var v Version
	core, pre, _ := strings.Cut(strings.TrimSpace(s), "-")
	v.Pre = pre
	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("parser: invalid version %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("parser: invalid version %q", s)
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

// String renders the version as major.minor.patch[-pre].
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Supported reports whether the version belongs to a supported 3.x series.
// Future patch releases of a known series are accepted.
func (v Version) Supported() bool {
	return supportedSeries[[2]int{v.Major, v.Minor}]
}

// AtLeast reports whether v is major.minor or later.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}
