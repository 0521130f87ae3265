package typedtemplate

import "strings"

// Version is the module release version.
const Version = "0.1.2"

// VersionShort returns the major.minor part of Version.
func VersionShort() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) < 2 {
		return Version
	}
	return parts[0] + "." + parts[1]
}
