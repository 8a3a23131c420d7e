// Package corpusdata embeds the precomputed solution corpus: one plain-text
// resource per (tile count, target), one candidate expression per line.
// Layout: answers/<k>/<target>.txt.
package corpusdata

import (
	"embed"
	"io/fs"
)

//go:embed answers
var answers embed.FS

// FS returns the corpus rooted at "answers".
func FS() fs.FS {
	sub, err := fs.Sub(answers, "answers")
	if err != nil {
		// The subtree is compiled in; this cannot fail at runtime.
		panic(err)
	}
	return sub
}
