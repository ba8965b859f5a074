package recipient

import (
	"strconv"
	"strings"

	"github.com/stepwire/stepwire/engine/core"
)

// KeySeparator joins the group and role ids of a membership key.
const KeySeparator = "$"

// indirectSeparator splits an indirect membership reference into its step and
// field parts.
const indirectSeparator = ":"

// MembershipKey builds the "<groupId>$<roleId>" key for a group/role pairing.
// Construction fails when either id is not strictly positive. The key is not
// commutative: swapping the ids yields a different key.
func MembershipKey(groupID, roleID int64) (string, bool) {
	if !core.IsPositiveID(groupID) || !core.IsPositiveID(roleID) {
		return "", false
	}
	return strconv.FormatInt(groupID, 10) + KeySeparator + strconv.FormatInt(roleID, 10), true
}

// ParseMembershipKey recovers the group and role ids from a membership key.
func ParseMembershipKey(key string) (groupID, roleID int64, ok bool) {
	parts := strings.Split(key, KeySeparator)
	if len(parts) != 2 {
		return 0, 0, false
	}
	groupID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	roleID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	if !core.IsPositiveID(groupID) || !core.IsPositiveID(roleID) {
		return 0, 0, false
	}
	return groupID, roleID, true
}

// SplitIndirectRef splits a "<stepRef>:<fieldRef>" indirect membership
// reference. It only matches when the reference contains exactly one colon
// and both sides are non-empty.
func SplitIndirectRef(ref string) (stepRef, fieldRef string, ok bool) {
	if strings.Count(ref, indirectSeparator) != 1 {
		return "", "", false
	}
	stepRef, fieldRef, _ = strings.Cut(ref, indirectSeparator)
	if stepRef == "" || fieldRef == "" {
		return "", "", false
	}
	return stepRef, fieldRef, true
}
