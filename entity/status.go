package entity

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Status is one of the states a torrent can be in; a torrent may be in several.
type Status string

const (
	Verifying   Status = "verifying"
	Downloading Status = "downloading"
	Uploading   Status = "uploading"
	Connected   Status = "connected"
	Seeding     Status = "seeding"
	Idle        Status = "idle"
	Queued      Status = "queued"
	Discovering Status = "discovering"
	Isolated    Status = "isolated"
	Stopped     Status = "stopped"
)

// AllStatuses lists statuses from most to least lively, which is also their sort rank.
var AllStatuses = []Status{
	Verifying, Downloading, Uploading, Connected, Seeding,
	Idle, Queued, Discovering, Isolated, Stopped,
}

// ParseStatus finds a status by name, ignoring case.
func ParseStatus(name string) (status Status, err error) {

	name = strings.ToLower(strings.TrimSpace(name))
	for _, st := range AllStatuses {
		if string(st) == name {
			status = st
			return
		}
	}

	err = errors.Errorf("unknown status: %q", name)
	return
}

// Rank returns the lowest rank among statuses, or len(AllStatuses) for none.
func Rank(statuses []Status) (rank int) {

	rank = len(AllStatuses)
	for _, st := range statuses {
		idx := slices.Index(AllStatuses, st)
		if idx >= 0 && idx < rank {
			rank = idx
		}
	}
	return
}
