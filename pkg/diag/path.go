package diag

import (
	"fmt"
	"strings"
)

// JoinPath appends a key segment to a dot-separated document path. Either
// side may be empty.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// IndexPath appends a bracketed index segment to a document path, producing
// paths such as "view.home.fields[0]".
func IndexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}
