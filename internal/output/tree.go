package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	statusColumn = 44
)

// FileEntry is one generated path and what happened to it.
type FileEntry struct {
	Path   string
	Status string
}

type treeNode struct {
	name     string
	status   string
	isDir    bool
	children []*treeNode
}

// RenderFileTree renders the entries as a directory tree under rootName,
// directories first, with the status of each file aligned in a column.
// Entries are paths relative to the root.
func RenderFileTree(rootName string, entries []FileEntry) string {
	if len(entries) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, isDir: true}
	for _, e := range entries {
		parts := strings.Split(filepath.ToSlash(filepath.Clean(e.Path)), "/")
		current := root
		for i, part := range parts {
			last := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &treeNode{name: part, isDir: !last}
				current.children = append(current.children, child)
			}
			if last {
				child.status = e.Status
			}
			current = child
		}
	}
	root.sort()

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(rootName + "/"))
	sb.WriteString("\n")
	for i, c := range root.children {
		c.render(&sb, "", i == len(root.children)-1)
	}
	return sb.String()
}

func (n *treeNode) child(name string) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *treeNode) sort() {
	sort.Slice(n.children, func(i, j int) bool {
		if n.children[i].isDir != n.children[j].isDir {
			return n.children[i].isDir
		}
		return n.children[i].name < n.children[j].name
	})
	for _, c := range n.children {
		c.sort()
	}
}

func (n *treeNode) render(sb *strings.Builder, prefix string, isLast bool) {
	connector := treeEdge
	if isLast {
		connector = treeLast
	}
	name := n.name
	if n.isDir {
		name += "/"
	}

	line := prefix + connector + name
	if n.status != "" && !n.isDir {
		padding := statusColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + StatusStyle(n.status).Render(n.status)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if isLast {
		childPrefix = prefix + treeSpace
	}
	for i, c := range n.children {
		c.render(sb, childPrefix, i == len(n.children)-1)
	}
}
