package supportcode

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// callSite reports the location of the code that called the exported
// Builder method invoking callSite. It must be called directly from that method.
func (b *Builder) callSite() domain.Location {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return domain.Location{}
	}
	return domain.Location{URI: b.relativeURI(file), Line: line}
}

// relativeURI makes file relative to the project path when it lives under it.
func (b *Builder) relativeURI(file string) string {
	if b.projectPath == "" {
		return file
	}
	root, err := filepath.Abs(b.projectPath)
	if err != nil {
		return file
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return file
	}
	return filepath.ToSlash(rel)
}
