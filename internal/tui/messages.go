package tui

import "github.com/Veraticus/robux-must-flow/internal/session"

// snapshotLoadedMsg carries the result of a session load.
type snapshotLoadedMsg struct {
	err      error
	snapshot session.Snapshot
	forced   bool
}
