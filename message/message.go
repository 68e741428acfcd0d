// Package message holds messages passed between the model and its panels.
package message

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// GetPageMsg signals to load a page of torrents
type GetPageMsg struct {
	Offset int
	Size   int
}

// SelectedMsg reports the row and id of the selected torrent
type SelectedMsg struct {
	Row int
	Id  int64
}
