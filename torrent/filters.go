package torrent

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	nt "torsift/entity"
	"torsift/filter"
)

var hundred = decimal.NewFromInt(100)

// hasStatus is a boolean predicate on the status attribute.
func hasStatus(st nt.Status) filter.Predicate {
	return func(rec nt.Record) (ok bool, err error) {
		statuses, err := rec.Get(KeyStatus).Statuses()
		ok = slices.Contains(statuses, st)
		return
	}
}

// positive is a boolean predicate on a numeric attribute being above zero.
func positive(key string) filter.Predicate {
	return func(rec nt.Record) (ok bool, err error) {
		dec, err := rec.Get(key).Decimal()
		ok = dec.IsPositive()
		return
	}
}

func complete(rec nt.Record) (ok bool, err error) {
	dec, err := rec.Get(KeyPercentDone).Decimal()
	ok = dec.GreaterThanOrEqual(hundred)
	return
}

func private(rec nt.Record) (bool, error) {
	return rec.Get(KeyPrivate).Bool()
}

func filterSpecs() []*filter.Spec {
	return []*filter.Spec{
		{
			Name: "complete", Aliases: []string{"cmp"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPercentDone}, Default: complete,
			Description: "Torrents with all wanted files downloaded",
		},
		{
			Name: "incomplete", Aliases: []string{"inc"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPercentDone},
			Default: func(rec nt.Record) (bool, error) {
				ok, err := complete(rec)
				return !ok && err == nil, err
			},
			Description: "Torrents with wanted files left to download",
		},
		{
			Name: "stopped", Aliases: []string{"stp"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Stopped),
			Description: "Torrents that are not allowed to up- or download",
		},
		{
			Name: "active", Aliases: []string{"act"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPeers, KeyStatus},
			Default: func(rec nt.Record) (ok bool, err error) {
				ok, err = positive(KeyPeers)(rec)
				if err != nil || ok {
					return
				}
				ok, err = hasStatus(nt.Verifying)(rec)
				return
			},
			Description: "Torrents connected to peers or being verified",
		},
		{
			Name: "uploading", Aliases: []string{"upg"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyRateUp}, Default: positive(KeyRateUp),
			Description: "Torrents using upload bandwidth",
		},
		{
			Name: "downloading", Aliases: []string{"dng"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyRateDown}, Default: positive(KeyRateDown),
			Description: "Torrents using download bandwidth",
		},
		{
			Name: "seeding", Aliases: []string{"sdg"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Seeding),
			Description: "Torrents offering their data to peers",
		},
		{
			Name: "verifying", Aliases: []string{"vfg"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Verifying),
			Description: "Torrents being verified or queued for verification",
		},
		{
			Name: "idle", Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Idle),
			Description: "Torrents that are started but not transferring",
		},
		{
			Name: "isolated", Aliases: []string{"isl"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Isolated),
			Description: "Torrents that cannot discover new peers",
		},
		{
			Name: "leeching", Aliases: []string{"lcg"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPercentDone, KeyStatus},
			Default: func(rec nt.Record) (ok bool, err error) {
				ok, err = complete(rec)
				if err != nil || ok {
					ok = false
					return
				}
				ok, err = hasStatus(nt.Stopped)(rec)
				ok = !ok && err == nil
				return
			},
			Description: "Incomplete torrents that are not stopped",
		},
		{
			Name: "queued", Aliases: []string{"que"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyStatus}, Default: hasStatus(nt.Queued),
			Description: "Torrents waiting for a download or seeding slot",
		},
		{
			Name: "private", Aliases: []string{"prv"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPrivate}, Default: private,
			Description: "Torrents that only use trackers for peer discovery",
		},
		{
			Name: "public", Aliases: []string{"pub"}, Kind: filter.KindBoolean,
			NeededKeys: []string{KeyPrivate},
			Default: func(rec nt.Record) (bool, error) {
				ok, err := private(rec)
				return !ok && err == nil, err
			},
			Description: "Torrents that may also use DHT, PEX and LPD",
		},

		{Name: "id", Kind: filter.KindNumber, Key: KeyId, Description: "Torrent id"},
		{Name: "name", Aliases: []string{"n"}, Kind: filter.KindString, Key: KeyName, Implied: true, Description: "Torrent name"},
		{Name: "path", Aliases: []string{"pt"}, Kind: filter.KindPath, Key: KeyPath, Description: "Download directory"},
		{Name: "comment", Aliases: []string{"cmt"}, Kind: filter.KindString, Key: KeyComment, Description: "Torrent comment"},
		{Name: "creator", Aliases: []string{"crt"}, Kind: filter.KindString, Key: KeyCreator, Description: "Application that created the torrent"},
		{Name: "error", Aliases: []string{"err"}, Kind: filter.KindString, Key: KeyError, Description: "Error message"},
		{Name: "tracker", Aliases: []string{"trk"}, Kind: filter.KindString, Key: KeyTracker, Description: "Announce URL of a tracker"},
		{Name: "status", Aliases: []string{"st"}, Kind: filter.KindStatus, Key: KeyStatus, Description: "Status flag"},
		{Name: "%downloaded", Aliases: []string{"%dn"}, Kind: filter.KindPercentage, Key: KeyPercentDone, Description: "Downloaded percentage of wanted bytes"},
		{Name: "size", Aliases: []string{"sz"}, Kind: filter.KindSize, Key: KeySize, Description: "Bytes of wanted files"},
		{Name: "downloaded", Aliases: []string{"dn"}, Kind: filter.KindSize, Key: KeyDownloaded, Description: "Bytes downloaded"},
		{Name: "uploaded", Aliases: []string{"up"}, Kind: filter.KindSize, Key: KeyUploaded, Description: "Bytes uploaded"},
		{Name: "ratio", Aliases: []string{"rt"}, Kind: filter.KindNumber, Key: KeyRatio, Description: "Uploaded/downloaded ratio"},
		{Name: "rate-up", Aliases: []string{"rup"}, Kind: filter.KindSize, Key: KeyRateUp, Description: "Upload rate in bytes per second"},
		{Name: "rate-down", Aliases: []string{"rdn"}, Kind: filter.KindSize, Key: KeyRateDown, Description: "Download rate in bytes per second"},
		{Name: "peers", Aliases: []string{"prs"}, Kind: filter.KindNumber, Key: KeyPeers, Description: "Connected peers"},
		{Name: "seeds", Aliases: []string{"sds"}, Kind: filter.KindNumber, Key: KeySeeds, Description: "Known seeds"},
		{Name: "eta", Kind: filter.KindTimespan, Key: KeyEta, Description: "Estimated time until download completes"},
	}
}

var (
	filterOnce sync.Once
	filterReg  *filter.Registry
)

// Filters returns the torrent filter registry.
func Filters() *filter.Registry {

	filterOnce.Do(func() {
		var err error
		filterReg, err = filter.NewRegistry(filterSpecs()...)
		if err != nil {
			panic(err)
		}
	})
	return filterReg
}

// ParseFilter parses filter text against the torrent registry; several texts are ORed.
func ParseFilter(texts ...string) (filter.Expression, error) {
	return filter.ParseAny(Filters(), texts...)
}
