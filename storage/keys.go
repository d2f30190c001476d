package storage

import (
	"path"
	"strings"
)

// FolderPrefix normalizes a folder path into the prefix form used by object
// stores: no leading slash, exactly one trailing slash. An empty input means
// the bucket root and stays empty.
func FolderPrefix(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}

// CleanKey strips a leading slash and collapses repeated slashes so keys
// coming from URL paths address the same object as keys built directly.
func CleanKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

// DuplicateKey derives the destination key for a duplicate of src: the
// extension is preserved and "-copy" is appended to the base name.
// "docs/report.pdf" becomes "docs/report-copy.pdf".
func DuplicateKey(src string) string {
	dir := path.Dir(src)
	ext := path.Ext(src)
	base := strings.TrimSuffix(path.Base(src), ext)
	name := base + "-copy" + ext
	if dir == "." || dir == "/" {
		return name
	}
	return dir + "/" + name
}

// BaseName returns the last path element of a key or prefix, without any
// trailing slash. Used to present folder prefixes as display names.
func BaseName(key string) string {
	return path.Base(strings.TrimSuffix(key, "/"))
}
