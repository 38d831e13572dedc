package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlistsync/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRanked MsgKind = iota
	MsgProgressUpdate
	MsgPublishComplete
)

type rankedData struct {
	result *tasks.RankResult
	err    error
}

type progressData struct {
	update tasks.ProgressUpdate
	next   tea.Cmd // waits for the following update
}

type publishData struct {
	result *tasks.SyncResult
	err    error
}

// rankedMsg is the constructor for [MsgRanked]
func rankedMsg(result *tasks.RankResult, err error) Msg {
	return Msg{kind: MsgRanked, data: rankedData{result, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate, next tea.Cmd) Msg {
	return Msg{kind: MsgProgressUpdate, data: progressData{update, next}}
}

// publishCompleteMsg is the constructor for [MsgPublishComplete]
func publishCompleteMsg(result *tasks.SyncResult, err error) Msg {
	return Msg{kind: MsgPublishComplete, data: publishData{result, err}}
}
