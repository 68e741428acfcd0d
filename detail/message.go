package detail

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg()    {}
func (TorrentMsg) isDetailMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// TorrentMsg carries every attribute of one torrent.
type TorrentMsg struct {
	Torrent map[string]any
}
