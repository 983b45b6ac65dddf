package planner

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const rootKey = "root"

// ThreadEntry is one rendered comment of a thread.
type ThreadEntry struct {
	Comment core.Comment
	Depth   int
	// Key is the comment id, or "<parent-or-root>-<index>" for comments without one.
	// A synthesized key is never a valid parent reference.
	Key string
}

// BuildThread lays out comments under parentID ("" for the post itself) in pre-order: each comment
// is followed by its replies, siblings ordered by timestamp. Comments whose parent is not in the
// list are never reached. A cycle in parent pointers drops the repeating subtree and logs a warning.
func BuildThread(comments []core.Comment, parentID string) []ThreadEntry {
	b := threadBuilder{
		comments: comments,
		children: make(map[string][]int),
		path:     make(map[string]struct{}),
	}

	for i, c := range comments {
		parent := canonicalID(c.ParentID.String())
		b.children[parent] = append(b.children[parent], i)
	}
	for parent, idxs := range b.children {
		slices.SortStableFunc(idxs, func(x, y int) int {
			return SortKey(comments[x].Timestamp.String()).Compare(SortKey(comments[y].Timestamp.String()))
		})
		b.children[parent] = idxs
	}

	start := canonicalID(parentID)
	if start != "" {
		b.path[start] = struct{}{}
	}
	b.walk(start, 0)

	return b.out
}

type threadBuilder struct {
	comments []core.Comment
	children map[string][]int
	path     map[string]struct{}
	out      []ThreadEntry
}

func (b *threadBuilder) walk(parent string, depth int) {
	for i, idx := range b.children[parent] {
		c := b.comments[idx]
		id := canonicalID(c.ID.String())

		if id == "" {
			b.out = append(b.out, ThreadEntry{Comment: c, Depth: depth, Key: syntheticKey(parent, i)})
			continue
		}

		if _, onPath := b.path[id]; onPath {
			slog.Warn("comment thread cycle, dropping subtree", "comment_id", id, "parent_id", parent)
			continue
		}

		b.out = append(b.out, ThreadEntry{Comment: c, Depth: depth, Key: id})

		b.path[id] = struct{}{}
		b.walk(id, depth+1)
		delete(b.path, id)
	}
}

func canonicalID(raw string) string {
	return strings.TrimSpace(raw)
}

func syntheticKey(parent string, index int) string {
	if parent == "" {
		parent = rootKey
	}
	return fmt.Sprintf("%s-%d", parent, index)
}
