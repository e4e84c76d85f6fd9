package cmdutil

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/output"
)

// statusRank orders statuses when one path was touched more than once.
var statusRank = map[filesystem.Action]int{
	filesystem.ActionSkipped:     1,
	filesystem.ActionMissing:     2,
	filesystem.ActionAppended:    3,
	filesystem.ActionOverwritten: 4,
	filesystem.ActionCreated:     5,
}

// RunBuilder runs b with a spinner and converts a failure into an ExitError
// carrying the process exit status.
func RunBuilder(ctx context.Context, b builder.Builder, title string) error {
	err := output.RunWithSpinner(ctx, func() error {
		return builder.Run(ctx, b)
	}, output.WithTitle(title))
	if err != nil {
		return &cmdtypes.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
	}
	return nil
}

// FileEntries converts gateway changes below root into tree entries.
// Directory creation is implied by the files and left out.
func FileEntries(root string, changes []filesystem.Change) []output.FileEntry {
	seen := map[string]int{}
	var entries []output.FileEntry
	for _, c := range changes {
		if c.Action == filesystem.ActionDir {
			continue
		}
		rel, err := filepath.Rel(root, c.Path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)

		if i, ok := seen[rel]; ok {
			if statusRank[c.Action] > statusRank[filesystem.Action(entries[i].Status)] {
				entries[i].Status = string(c.Action)
			}
			continue
		}
		seen[rel] = len(entries)
		entries = append(entries, output.FileEntry{Path: rel, Status: string(c.Action)})
	}
	return entries
}

// PrintResult writes the completion line and the tree of touched files.
func PrintResult(w io.Writer, msg, root string, changes []filesystem.Change) {
	fmt.Fprintln(w, output.FormatCheckmark(msg))
	if tree := output.RenderFileTree(filepath.Base(root), FileEntries(root, changes)); tree != "" {
		fmt.Fprintln(w, tree)
	}
}
