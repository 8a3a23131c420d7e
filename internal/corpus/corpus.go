// Package corpus indexes the precomputed library of solvable expressions.
// The index is built once at startup, read-only afterward, and handed to
// the generator as an explicit dependency; retrieval is lazy because the
// corpus is partitioned into many small per-target resources.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ErrCorpusMissing is returned when a (k, target) pair has no entry, or a
// tile count has no targets at all. Retrying cannot help.
var ErrCorpusMissing = errors.New("corpus: no solutions for request")

// MinTarget and MaxTarget bound the playable target range.
const (
	MinTarget = 1
	MaxTarget = 99
)

// FSIndex serves the corpus from a file system with the layout
// <k>/<target>.txt. Directory structure is scanned once per tile count;
// solution lines are read only when asked for.
type FSIndex struct {
	fsys fs.FS
}

// NewFSIndex wraps fsys (typically corpusdata.FS() or an os.DirFS).
func NewFSIndex(fsys fs.FS) *FSIndex { return &FSIndex{fsys: fsys} }

// TargetsFor returns the sorted targets in [1,99] with at least one known
// solution for k tiles. Unknown tile counts yield an empty set, not an error.
func (x *FSIndex) TargetsFor(ctx context.Context, k int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ents, err := fs.ReadDir(x.fsys, strconv.Itoa(k))
	if err != nil {
		return nil, nil
	}
	var out []int
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), ".txt")
		if !ok {
			continue
		}
		t, err := strconv.Atoi(name)
		if err != nil || t < MinTarget || t > MaxTarget {
			continue
		}
		out = append(out, t)
	}
	sort.Ints(out)
	return out, nil
}

// SolutionsFor returns the raw candidate lines for (k, target), in file
// order, blank lines dropped. The target comes from the resource key; it is
// never re-derived from the expression text.
func (x *FSIndex) SolutionsFor(ctx context.Context, k, target int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(x.fsys, path.Join(strconv.Itoa(k), strconv.Itoa(target)+".txt"))
	if err != nil {
		return nil, fmt.Errorf("%w: k=%d target=%d", ErrCorpusMissing, k, target)
	}
	return usableLines(string(data)), nil
}

func usableLines(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
