package journal

// Carryover computes the tasks that migrate from one weekly document into
// the next period.
//
// A node is selected iff it is not completed or it has at least one
// selected descendant: a done parent with pending children is carried as
// structure. A completed node with no selected descendant is dropped with
// its whole subtree. Selected nodes keep their parent/child relationships
// and sibling order; roots whose ancestors were dropped are renumbered
// from depth 0.
//
// The week objectives carry into the next week's objectives; the
// "Tareas del Día" zones of all days carry, in document order, into the
// next period's first day. "Tareas Completadas" zones are never
// candidates.
func Carryover(week *WeekDocument) CarryoverSet {
	var set CarryoverSet

	carryTree(&set.Objectives, &week.Objectives)

	for i := range week.Days {
		carryTree(&set.Tasks, &week.Days[i].Tasks)
	}

	return set
}

func carryTree(dst, src *Tree) {
	for _, root := range src.Roots() {
		carryNode(dst, src, root, -1)
	}
}

// carryNode copies the subtree at idx into dst under dstParent when the
// selection rule keeps it. It reports whether the node was selected.
func carryNode(dst, src *Tree, idx, dstParent int) bool {
	n := src.Nodes[idx]

	// The copy is added eagerly so selected children can attach to it;
	// it is pruned again if nothing kept it alive.
	copyIdx := dst.Add(dstParent, n.Text, n.Done)

	selected := !n.Done

	for _, child := range n.Children {
		if carryNode(dst, src, child, copyIdx) {
			selected = true
		}
	}

	if !selected {
		dst.prune(copyIdx, dstParent)
	}

	return selected
}

// prune removes the most recently added node. Children are pruned before
// their parent decides, so a pruned node is always the arena tail and has
// no surviving children.
func (t *Tree) prune(idx, parent int) {
	if parent >= 0 {
		children := t.Nodes[parent].Children
		t.Nodes[parent].Children = children[:len(children)-1]
	}

	t.Nodes = t.Nodes[:idx]
}
