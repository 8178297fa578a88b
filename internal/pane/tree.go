package pane

import (
	"errors"
	"fmt"
	"math"

	"github.com/chordedit/chord/internal/editor/buffer"
)

// Errors returned by tree operations.
var (
	ErrInvalidTarget = errors.New("invalid pane target")
	ErrLastPane      = errors.New("cannot close the last pane")
	ErrInvalidWeight = errors.New("invalid pane weight")
)

// NodeID identifies a node in the tree's arena. IDs stay valid until the
// node is closed; closed slots are reused.
type NodeID int

// NoNode is the null node ID.
const NoNode NodeID = -1

type nodeKind uint8

const (
	nodeLeaf nodeKind = iota
	nodeSplit
)

// node is one arena slot. A leaf shows a buffer; a split divides its
// rectangle among children along its orientation.
type node struct {
	used   bool
	kind   nodeKind
	parent NodeID
	weight float64

	// split fields
	orient   Orientation
	children []NodeID

	// leaf fields
	buffer buffer.ID
	scroll int
}

// Tree is the pane layout: an arena of splits and leaves with one focused
// leaf. It is not safe for concurrent use; all mutation happens on the
// dispatch thread.
type Tree struct {
	nodes []node
	free  []NodeID
	root  NodeID
	focus NodeID

	// lastRect and lastLayout cache the most recent Relayout so focus
	// movement and hit-testing can reason about geometry.
	lastRect   Rect
	lastLayout map[NodeID]Rect
}

// NewTree creates a tree with a single leaf showing the given buffer.
func NewTree(buf buffer.ID) *Tree {
	t := &Tree{root: NoNode, focus: NoNode}
	id := t.alloc(node{
		kind:   nodeLeaf,
		parent: NoNode,
		weight: 1,
		buffer: buf,
	})
	t.root = id
	t.focus = id
	return t
}

func (t *Tree) alloc(n node) NodeID {
	n.used = true
	if len(t.free) > 0 {
		id := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) release(id NodeID) {
	t.nodes[id] = node{}
	t.free = append(t.free, id)
}

// valid reports whether id names a live node.
func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].used
}

func (t *Tree) leaf(id NodeID) (*node, error) {
	if !t.valid(id) || t.nodes[id].kind != nodeLeaf {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, id)
	}
	return &t.nodes[id], nil
}

// Root returns the root node ID.
func (t *Tree) Root() NodeID { return t.root }

// Focus returns the focused leaf.
func (t *Tree) Focus() NodeID { return t.focus }

// SetFocus moves focus to the given leaf.
func (t *Tree) SetFocus(id NodeID) error {
	if _, err := t.leaf(id); err != nil {
		return err
	}
	t.focus = id
	return nil
}

// BufferOf returns the buffer shown by a leaf.
func (t *Tree) BufferOf(id NodeID) (buffer.ID, error) {
	n, err := t.leaf(id)
	if err != nil {
		return "", err
	}
	return n.buffer, nil
}

// SetBuffer changes the buffer shown by a leaf and resets its scroll.
func (t *Tree) SetBuffer(id NodeID, buf buffer.ID) error {
	n, err := t.leaf(id)
	if err != nil {
		return err
	}
	n.buffer = buf
	n.scroll = 0
	return nil
}

// Scroll returns a leaf's scroll offset in lines.
func (t *Tree) Scroll(id NodeID) (int, error) {
	n, err := t.leaf(id)
	if err != nil {
		return 0, err
	}
	return n.scroll, nil
}

// SetScroll sets a leaf's scroll offset. Negative offsets clamp to zero.
func (t *Tree) SetScroll(id NodeID, lines int) error {
	n, err := t.leaf(id)
	if err != nil {
		return err
	}
	if lines < 0 {
		lines = 0
	}
	n.scroll = lines
	return nil
}

// Split divides the target leaf along the given orientation and returns
// the new leaf. The new leaf shows the same buffer with the same scroll,
// and focus stays on the target. Splitting a leaf whose parent already has
// the orientation adds a sibling instead of nesting another split.
func (t *Tree) Split(target NodeID, o Orientation) (NodeID, error) {
	src, err := t.leaf(target)
	if err != nil {
		return NoNode, err
	}

	fresh := node{
		kind:   nodeLeaf,
		weight: 1,
		buffer: src.buffer,
		scroll: src.scroll,
	}

	parent := src.parent
	if parent != NoNode && t.nodes[parent].orient == o {
		fresh.parent = parent
		fresh.weight = src.weight
		id := t.alloc(fresh)
		t.insertAfter(parent, target, id)
		return id, nil
	}

	split := node{
		kind:   nodeSplit,
		parent: parent,
		weight: t.nodes[target].weight,
		orient: o,
	}
	splitID := t.alloc(split)

	if parent == NoNode {
		t.root = splitID
	} else {
		t.replaceChild(parent, target, splitID)
	}

	t.nodes[target].parent = splitID
	t.nodes[target].weight = 1
	fresh.parent = splitID
	id := t.alloc(fresh)
	t.nodes[splitID].children = []NodeID{target, id}
	return id, nil
}

func (t *Tree) insertAfter(parent, after, id NodeID) {
	children := t.nodes[parent].children
	for i, c := range children {
		if c == after {
			children = append(children[:i+1], append([]NodeID{id}, children[i+1:]...)...)
			t.nodes[parent].children = children
			return
		}
	}
	t.nodes[parent].children = append(children, id)
}

func (t *Tree) replaceChild(parent, old, id NodeID) {
	for i, c := range t.nodes[parent].children {
		if c == old {
			t.nodes[parent].children[i] = id
			return
		}
	}
}

// Close removes the target leaf. Closing the only leaf fails with
// ErrLastPane. A split left with one child is replaced by that child, so
// no split ever has fewer than two children. If the closed leaf was
// focused, focus moves to the nearest remaining sibling's first leaf.
func (t *Tree) Close(target NodeID) error {
	if _, err := t.leaf(target); err != nil {
		return err
	}
	if target == t.root {
		return ErrLastPane
	}

	parent := t.nodes[target].parent
	idx := t.childIndex(parent, target)
	children := t.nodes[parent].children
	t.nodes[parent].children = append(children[:idx], children[idx+1:]...)
	t.release(target)

	wasFocused := t.focus == target

	survivor := NoNode
	if len(t.nodes[parent].children) == 1 {
		survivor = t.hoistOnlyChild(parent)
	} else {
		children := t.nodes[parent].children
		if idx >= len(children) {
			idx = len(children) - 1
		}
		survivor = children[idx]
	}

	if wasFocused {
		t.focus = t.firstLeaf(survivor)
	}
	return nil
}

// hoistOnlyChild replaces a single-child split with its child and returns
// a live node inside the hoisted subtree.
func (t *Tree) hoistOnlyChild(split NodeID) NodeID {
	child := t.nodes[split].children[0]
	grand := t.nodes[split].parent

	t.nodes[child].parent = grand
	t.nodes[child].weight = t.nodes[split].weight
	t.release(split)

	if grand == NoNode {
		t.root = child
		t.nodes[child].weight = 1
		return child
	}
	t.replaceChild(grand, split, child)
	// Merge a hoisted split into a same-orientation grandparent.
	if t.nodes[child].kind == nodeSplit && t.nodes[grand].orient == t.nodes[child].orient {
		first := t.nodes[child].children[0]
		t.spliceChildren(grand, child)
		return first
	}
	return child
}

// spliceChildren inlines a split's children into its same-orientation
// parent, scaling weights to preserve proportions.
func (t *Tree) spliceChildren(parent, split NodeID) {
	kids := t.nodes[split].children
	var sum float64
	for _, c := range kids {
		sum += t.nodes[c].weight
	}
	scale := t.nodes[split].weight / sum

	idx := t.childIndex(parent, split)
	for _, c := range kids {
		t.nodes[c].parent = parent
		t.nodes[c].weight *= scale
	}
	siblings := t.nodes[parent].children
	merged := make([]NodeID, 0, len(siblings)+len(kids)-1)
	merged = append(merged, siblings[:idx]...)
	merged = append(merged, kids...)
	merged = append(merged, siblings[idx+1:]...)
	t.nodes[parent].children = merged
	t.release(split)
}

func (t *Tree) childIndex(parent, child NodeID) int {
	for i, c := range t.nodes[parent].children {
		if c == child {
			return i
		}
	}
	return -1
}

// firstLeaf descends to the first leaf under id.
func (t *Tree) firstLeaf(id NodeID) NodeID {
	for t.nodes[id].kind == nodeSplit {
		id = t.nodes[id].children[0]
	}
	return id
}

// Resize sets the target's weight relative to its siblings. Sibling
// weights are untouched and the per-split total is not renormalized, so
// growing one pane shrinks the others proportionally; only the weight
// ratios matter to Layout. The root cannot be resized.
func (t *Tree) Resize(target NodeID, weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	if !t.valid(target) || t.nodes[target].parent == NoNode {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	t.nodes[target].weight = weight
	return nil
}

// Layout computes leaf rectangles for the given frame without touching
// tree state. Children tile their parent exactly: each gets the floor of
// its weighted share and the last child absorbs the remainder.
func (t *Tree) Layout(frame Rect) map[NodeID]Rect {
	out := make(map[NodeID]Rect)
	t.layoutNode(t.root, frame, out)
	return out
}

func (t *Tree) layoutNode(id NodeID, frame Rect, out map[NodeID]Rect) {
	n := &t.nodes[id]
	if n.kind == nodeLeaf {
		out[id] = frame
		return
	}

	var sum float64
	for _, c := range n.children {
		sum += t.nodes[c].weight
	}

	total := frame.Width
	if n.orient == OrientVertical {
		total = frame.Height
	}

	offset := 0
	for i, c := range n.children {
		size := total - offset
		if i < len(n.children)-1 {
			size = int(float64(total) * t.nodes[c].weight / sum)
		}

		child := frame
		if n.orient == OrientHorizontal {
			child.X = frame.X + offset
			child.Width = size
		} else {
			child.Y = frame.Y + offset
			child.Height = size
		}
		t.layoutNode(c, child, out)
		offset += size
	}
}

// Relayout recomputes and caches the layout for the given frame. Call it
// whenever the frame resizes or the tree mutates.
func (t *Tree) Relayout(frame Rect) map[NodeID]Rect {
	t.lastRect = frame
	t.lastLayout = t.Layout(frame)
	return t.lastLayout
}

// LastLayout returns the cached layout from the most recent Relayout.
func (t *Tree) LastLayout() map[NodeID]Rect {
	return t.lastLayout
}

// LeafAt returns the leaf whose cached rectangle contains the point.
func (t *Tree) LeafAt(p Point) (NodeID, bool) {
	for _, id := range t.Leaves() {
		if r, ok := t.lastLayout[id]; ok && r.Contains(p) {
			return id, true
		}
	}
	return NoNode, false
}

// FocusMove moves focus to the nearest leaf in the given direction, using
// the cached layout. Among leaves on that side, the one with the largest
// perpendicular overlap wins; ties fall to the closest center. At the
// frame edge focus stays put and the current leaf is returned.
func (t *Tree) FocusMove(dir Direction) (NodeID, error) {
	if !t.valid(t.focus) {
		return NoNode, fmt.Errorf("%w: %d", ErrInvalidTarget, t.focus)
	}
	if t.lastLayout == nil {
		t.Relayout(t.lastRect)
	}

	cur, ok := t.lastLayout[t.focus]
	if !ok {
		return t.focus, nil
	}

	// Walk leaves in layout order so full ties resolve to the topmost,
	// leftmost candidate instead of map iteration order.
	best := NoNode
	bestOverlap := -1
	bestDist := 0
	for _, id := range t.Leaves() {
		r, ok := t.lastLayout[id]
		if !ok || id == t.focus || !onSide(cur, r, dir) {
			continue
		}
		ov := overlap(cur, r, dir)
		dist := centerDistance(cur, r)
		if ov > bestOverlap || (ov == bestOverlap && dist < bestDist) {
			best, bestOverlap, bestDist = id, ov, dist
		}
	}
	if best == NoNode {
		return t.focus, nil
	}
	t.focus = best
	return best, nil
}

// onSide reports whether r lies in direction dir from cur.
func onSide(cur, r Rect, dir Direction) bool {
	switch dir {
	case DirLeft:
		return r.X+r.Width <= cur.X
	case DirRight:
		return r.X >= cur.X+cur.Width
	case DirUp:
		return r.Y+r.Height <= cur.Y
	case DirDown:
		return r.Y >= cur.Y+cur.Height
	default:
		return false
	}
}

// overlap returns the shared extent on the axis perpendicular to dir.
func overlap(cur, r Rect, dir Direction) int {
	if dir == DirLeft || dir == DirRight {
		lo := max(cur.Y, r.Y)
		hi := min(cur.Y+cur.Height, r.Y+r.Height)
		return hi - lo
	}
	lo := max(cur.X, r.X)
	hi := min(cur.X+cur.Width, r.X+r.Width)
	return hi - lo
}

func centerDistance(a, b Rect) int {
	ca, cb := a.Center(), b.Center()
	dx, dy := ca.X-cb.X, ca.Y-cb.Y
	return dx*dx + dy*dy
}

// Leaves returns all leaf IDs in layout order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	t.collectLeaves(t.root, &out)
	return out
}

func (t *Tree) collectLeaves(id NodeID, out *[]NodeID) {
	n := &t.nodes[id]
	if n.kind == nodeLeaf {
		*out = append(*out, id)
		return
	}
	for _, c := range n.children {
		t.collectLeaves(c, out)
	}
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	return len(t.Leaves())
}

// NextLeaf moves focus to the next leaf in layout order, wrapping around,
// and returns it.
func (t *Tree) NextLeaf() NodeID {
	return t.cycleFocus(1)
}

// PrevLeaf moves focus to the previous leaf in layout order, wrapping
// around, and returns it.
func (t *Tree) PrevLeaf() NodeID {
	return t.cycleFocus(-1)
}

func (t *Tree) cycleFocus(step int) NodeID {
	leaves := t.Leaves()
	for i, id := range leaves {
		if id == t.focus {
			n := len(leaves)
			t.focus = leaves[((i+step)%n+n)%n]
			return t.focus
		}
	}
	t.focus = leaves[0]
	return t.focus
}
