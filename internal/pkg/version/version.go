package version

import (
	"fmt"

	_ "embed"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > commit.txt"
//go:generate sh -c "printf %s $(git rev-parse --abbrev-ref HEAD) > branch.txt"
//go:generate sh -c "printf %s $(git describe --tags --abbrev=0 2>/dev/null || echo none) > tag.txt"
//go:generate sh -c "git diff-index --quiet HEAD -- || echo dirty > dirty.txt; [ -f dirty.txt ] || echo clean > dirty.txt"

//go:embed commit.txt
var commit string

//go:embed branch.txt
var branch string

//go:embed tag.txt
var tag string

//go:embed dirty.txt
var dirty string

// GitInfo carries the git metadata baked into the binary.
type GitInfo struct {
	Commit string
	Branch string
	Tag    string
	Dirty  bool
}

// String renders the metadata in the format printed by the version command.
func (i GitInfo) String() string {
	return fmt.Sprintf("Tag: %s\nBranch: %s\nCommit: %s\nDirty: %v", i.Tag, i.Branch, i.Commit, i.Dirty)
}

var info = GitInfo{
	Commit: commit,
	Branch: branch,
	Tag:    tag,
	Dirty:  dirty == "dirty",
}

// GetGitInfo returns the git metadata recorded at build time.
func GetGitInfo() GitInfo {
	return info
}
