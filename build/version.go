package build

import (
	"strconv"
	"strings"
)

const (
	// Version is the current version of the pest toolkit.
	Version = "0.3.0"

	// IssuesURL is where bug reports triggered by Critical should be filed.
	IssuesURL = "https://gitlab.com/emptyspace/pest/issues"
)

var (
	// BinaryName is the name of the binary. It is supplied at compile time via
	// ldflags.
	BinaryName = "pnch"

	// GitRevision is the git commit the binary was built from. It is supplied
	// at compile time via ldflags.
	GitRevision = ""

	// BuildTime is the timestamp of the build. It is supplied at compile time
	// via ldflags.
	BuildTime = ""
)

// IsVersion returns whether str is a valid version number with no -rc
// component.
func IsVersion(str string) bool {
	for _, n := range strings.Split(str, ".") {
		if _, err := strconv.Atoi(n); err != nil {
			return false
		}
	}
	return true
}

// VersionCmp returns an int indicating the difference between a and b. It
// follows the convention of bytes.Compare and big.Cmp.
func VersionCmp(a, b string) int {
	aNums := strings.Split(a, ".")
	bNums := strings.Split(b, ".")

	for i := 0; i < min(len(aNums), len(bNums)); i++ {
		// Numbers that fail to parse compare as zero. IsVersion should be
		// used to reject such strings beforehand.
		aNum, _ := strconv.Atoi(aNums[i])
		bNum, _ := strconv.Atoi(bNums[i])
		if aNum < bNum {
			return -1
		} else if aNum > bNum {
			return 1
		}
	}

	// all shared digits are equal, but lengths may not be equal
	if len(aNums) < len(bNums) {
		return -1
	} else if len(aNums) > len(bNums) {
		return 1
	}

	// strings are identical
	return 0
}
