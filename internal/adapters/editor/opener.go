package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Open launches the user's preferred text editor on path and blocks until
// the editor exits. The editor inherits the terminal.
func Open(path string) error {
	editor := find()
	if editor == "" {
		return fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// find returns the editor to use: $EDITOR, then $VISUAL, then the first
// common editor on $PATH.
func find() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano", "code"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
