package table

import nt "torsift/entity"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (PageMsg) isTableMsg()    {}
func (ColumnsMsg) isTableMsg() {}
func (ResetMsg) isTableMsg()   {}

type SizeMsg struct {
	Width  int
	Height int
}

type PageMsg struct {
	Torrents []nt.Torrent
	Count    int
}

type ColumnsMsg struct {
	Columns []nt.Column
}

type ResetMsg struct{}
