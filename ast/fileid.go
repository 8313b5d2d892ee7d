package ast

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// ErrRootedFileID is returned when a file id carries a filesystem root or drive prefix
var ErrRootedFileID = errors.New("file id must be a relative path")

var knownSuffix = regexp.MustCompile(`\.(txt|rst|yaml|ast)$`)

// FileID identifies a source document by its slash separated path relative to the project root
type FileID string

// NewFileID normalizes a host path into a FileID
func NewFileID(location string) (FileID, error) {
	normalized := strings.ReplaceAll(location, `\`, "/")
	if strings.HasPrefix(normalized, "/") || hasDrive(normalized) {
		return "", fmt.Errorf("%w: %q", ErrRootedFileID, location)
	}
	var parts []string
	for _, part := range strings.Split(normalized, "/") {
		if part == "" || part == "." {
			continue
		}
		parts = append(parts, part)
	}
	return FileID(strings.Join(parts, "/")), nil
}

// MustFileID is like NewFileID but panics on error
func MustFileID(location string) FileID {
	fileID, err := NewFileID(location)
	if err != nil {
		panic(err)
	}
	return fileID
}

// AsPosix returns the slash separated form
func (f FileID) AsPosix() string {
	return string(f)
}

// WithoutKnownSuffix returns the id with a trailing source suffix (.txt, .rst, .yaml, .ast) removed
func (f FileID) WithoutKnownSuffix() string {
	dir, name := path.Split(string(f))
	return dir + knownSuffix.ReplaceAllString(name, "")
}

// Join prefixes the id with namespace
func (f FileID) Join(namespace string) FileID {
	return FileID(path.Join(namespace, string(f)))
}

func hasDrive(location string) bool {
	if len(location) < 2 || location[1] != ':' {
		return false
	}
	c := location[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
