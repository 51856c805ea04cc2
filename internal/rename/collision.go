package rename

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// CollisionPolicy decides what happens when a sanitized name is already taken.
type CollisionPolicy string

const (
	CollisionFail      CollisionPolicy = "fail"
	CollisionSkip      CollisionPolicy = "skip"
	CollisionSuffix    CollisionPolicy = "suffix"
	CollisionHash      CollisionPolicy = "hash"
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// Policies lists every accepted policy, default first.
var Policies = []CollisionPolicy{
	CollisionFail,
	CollisionSkip,
	CollisionSuffix,
	CollisionHash,
	CollisionOverwrite,
}

// ParseCollisionPolicy maps a name to a policy. An empty name means CollisionFail.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CollisionFail, nil
	}
	for _, p := range Policies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

const hashSuffixLen = 8

// hashSuffix returns the first hex digits of the BLAKE3 hash of name.
func hashSuffix(name string) string {
	hasher := blake3.New()
	hasher.Write([]byte(name))
	return hex.EncodeToString(hasher.Sum(nil))[:hashSuffixLen]
}

// resolve finds a free name for source whose sanitized name base+ext is
// taken. The suffix goes on the base name; an empty base gets no separator,
// so ".txt" becomes "2.txt". It returns "" when the policy leaves the file
// alone.
func resolve(policy CollisionPolicy, source, base, ext, sep string, taken func(string) bool) string {
	switch policy {
	case CollisionSuffix:
		return numbered(base, ext, sep, taken)
	case CollisionHash:
		hashed := join(base, sep, hashSuffix(source))
		if !taken(hashed + ext) {
			return hashed + ext
		}
		return numbered(hashed, ext, sep, taken)
	default:
		return ""
	}
}

func numbered(base, ext, sep string, taken func(string) bool) string {
	for i := 2; ; i++ {
		candidate := join(base, sep, strconv.Itoa(i)) + ext
		if !taken(candidate) {
			return candidate
		}
	}
}

func join(base, sep, suffix string) string {
	if base == "" {
		return suffix
	}
	return base + sep + suffix
}
