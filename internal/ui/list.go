package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/setlistsync/internal/ranking"
	"github.com/desertthunder/setlistsync/internal/shared"
)

var _ list.Item = songItem{}

// songItem wraps a [ranking.Entry] and its position to implement [list.Item].
type songItem struct {
	rank  int
	entry ranking.Entry
}

func (i songItem) FilterValue() string { return i.entry.Title }
func (i songItem) Title() string       { return fmt.Sprintf("%2d. %s", i.rank, i.entry.Title) }
func (i songItem) Description() string {
	return fmt.Sprintf("%d %s", i.entry.Count, shared.Pluralize(i.entry.Count, "play"))
}

func songItems(entries []ranking.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = songItem{rank: i + 1, entry: entry}
	}
	return items
}
