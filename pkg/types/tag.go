package types

import (
	"fmt"
	"path"
	"strings"
)

const archiveExtension = ".zip"

// Tag is a release tag, for example "v1.2.3_board-x".
//
// It is the idempotency key of a release and the stem of
// its archive name.
type Tag string

// NewTag returns the tag of the given project version and board (or
// build) name, following the "v{version}_{board}" convention.
func NewTag(projectVersion, boardName string) Tag {
	return Tag(fmt.Sprintf("v%s_%s", strings.TrimPrefix(projectVersion, "v"), boardName))
}

// ParseArchiveName returns the tag of a release archive file name.
//
// Only names like "v*.zip" are release archives, for the rest
// false is returned.
func ParseArchiveName(fileName string) (Tag, bool) {
	if !strings.HasPrefix(fileName, "v") || !strings.HasSuffix(fileName, archiveExtension) {
		return "", false
	}
	tag := strings.TrimSuffix(fileName, archiveExtension)
	if tag == "" || strings.ContainsAny(tag, `/\`) {
		return "", false
	}
	return Tag(tag), true
}

// String implements fmt.Stringer.
func (tag Tag) String() string {
	return string(tag)
}

// ArchiveName returns the file name of the release archive.
func (tag Tag) ArchiveName() string {
	return string(tag) + archiveExtension
}

// ObjectPrefix returns the object storage prefix of the release
// ("firmwares" -> "firmwares/v1.2.3_board-x").
func (tag Tag) ObjectPrefix(root string) string {
	return path.Join(root, string(tag))
}
