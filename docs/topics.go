// Package docs holds the user manual of fmload, one markdown file per topic.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic shown when none is asked for.
const index = "readme"

// Topic returns the markdown of a topic.
func Topic(name string) (string, error) {
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the markdown of several topics, one after the other.
// "*" stands for every topic but the index; no name at all means the index.
func Topics(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{index}
	}
	var b bytes.Buffer
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = Names()
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Names returns the sorted names of every topic but the index.
func Names() []string {
	files, _ := fs.Glob(docs, "*.md") // the pattern is valid
	var names []string
	for _, f := range files {
		if n := strings.TrimSuffix(path.Base(f), ".md"); n != index {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}
