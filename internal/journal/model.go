// Package journal implements the journal lifecycle engine: parsing weekly
// documents into a structured model, resolving task carryover between
// periods, generating new period documents, and consolidating finished
// periods into monthly and yearly rollups.
//
// The package is pure: it never touches the filesystem. Callers read and
// write documents and hand content in as strings.
package journal

import "time"

// Node is one checklist line. Nodes live in a Tree arena and reference
// their parent by index instead of by pointer.
type Node struct {
	// Text is the task text without the checkbox marker.
	Text string

	// Done reports whether the checkbox was marked.
	Done bool

	// Depth is the nesting depth, 0 for top-level tasks.
	Depth int

	// Parent is the arena index of the parent node, -1 for roots.
	Parent int

	// Children holds arena indices in source order.
	Children []int
}

// Tree is an arena of task nodes. The zero value is an empty tree.
type Tree struct {
	Nodes []Node
}

// Add appends a node under parent (-1 for a root) and returns its index.
// Depth is derived from the parent so that child depth is always
// parent depth + 1.
func (t *Tree) Add(parent int, text string, done bool) int {
	depth := 0
	if parent >= 0 {
		depth = t.Nodes[parent].Depth + 1
	}

	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Text:   text,
		Done:   done,
		Depth:  depth,
		Parent: parent,
	})

	if parent >= 0 {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}

	return idx
}

// Roots returns the indices of all top-level nodes in source order.
func (t *Tree) Roots() []int {
	var roots []int

	for i, n := range t.Nodes {
		if n.Parent == -1 {
			roots = append(roots, i)
		}
	}

	return roots
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return len(t.Nodes) == 0
}

// DayMeta is the work-location annotation for one day, supplied by the
// calendar provider.
type DayMeta struct {
	// Location is the configured location key (home, office, off, ...).
	Location string

	// Emoji prefixes the day heading.
	Emoji string

	// Note names the holiday or vacation forcing the day off, empty
	// otherwise.
	Note string
}

// DaySection is one calendar day inside a weekly document.
type DaySection struct {
	Date time.Time
	Meta DayMeta

	// Tasks holds the "Tareas del Día" zone.
	Tasks Tree

	// Completed holds the "Tareas Completadas" zone. Tasks here are
	// never carried forward.
	Completed Tree

	// Notes holds the free-text block after the task zones, verbatim,
	// trimmed of leading and trailing blank lines.
	Notes []string
}

// WeekDocument is one parsed or generated weekly journal document.
// Its identity is (year, month, week number), derived from Start.
type WeekDocument struct {
	Week   int
	Start  time.Time
	End    time.Time
	Weight string

	// Objectives holds the week-level "✅Topics" zone.
	Objectives Tree

	Days []DaySection
}

// Year returns the document's filename year.
func (w *WeekDocument) Year() int {
	return w.Start.Year()
}

// Month returns the document's filename month.
func (w *WeekDocument) Month() time.Month {
	return w.Start.Month()
}

// MonthTopicsDoc is a parsed month-topics document: a title month and an
// opaque body.
type MonthTopicsDoc struct {
	Month time.Month

	// Body holds every line after the title, trimmed of leading and
	// trailing blank lines.
	Body []string
}

// CarryoverSet is the resolver output: the task trees selected for
// migration into the next period. The generator embeds copies of these
// nodes, never the source arenas.
type CarryoverSet struct {
	// Objectives carries the week-level objectives zone.
	Objectives Tree

	// Tasks carries the day-level pending tasks, in document order.
	Tasks Tree
}

// Empty reports whether nothing was selected.
func (c *CarryoverSet) Empty() bool {
	return c.Objectives.Empty() && c.Tasks.Empty()
}
