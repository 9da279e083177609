package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/robux-must-flow/internal/session"
)

// Source is what the dashboard reads purchase history from.
// *session.Session satisfies it.
type Source interface {
	Load(ctx context.Context, force bool) (session.Snapshot, error)
	State() *session.State
	Now() time.Time
}

// loadSnapshot loads the history in the background. force bypasses the cache.
func loadSnapshot(ctx context.Context, src Source, force bool) tea.Cmd {
	return func() tea.Msg {
		snap, err := src.Load(ctx, force)
		return snapshotLoadedMsg{snapshot: snap, err: err, forced: force}
	}
}
