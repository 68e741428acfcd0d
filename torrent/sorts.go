package torrent

import (
	"slices"
	"sync"

	"torsift/filter"
	"torsift/order"
)

func sortKeys() []*order.Key {

	key := func(name string, aliases []string, attr string, cmp func(string) order.Comparator, desc string) *order.Key {
		return &order.Key{
			Name:        name,
			Aliases:     aliases,
			NeededKeys:  []string{attr},
			Compare:     cmp(attr),
			Description: desc,
		}
	}

	return []*order.Key{
		key("name", []string{"n"}, KeyName, order.ByText, "Torrent name in natural order"),
		key("id", nil, KeyId, order.ByNumber, "Torrent id"),
		key("path", []string{"pt"}, KeyPath, order.ByText, "Download directory"),
		key("status", []string{"st"}, KeyStatus, order.ByStatus, "Liveliest status"),
		key("%downloaded", []string{"%dn"}, KeyPercentDone, order.ByNumber, "Downloaded percentage"),
		key("size", []string{"sz"}, KeySize, order.ByNumber, "Bytes of wanted files"),
		key("downloaded", []string{"dn"}, KeyDownloaded, order.ByNumber, "Bytes downloaded"),
		key("uploaded", []string{"up"}, KeyUploaded, order.ByNumber, "Bytes uploaded"),
		key("ratio", []string{"rt"}, KeyRatio, order.ByNumber, "Uploaded/downloaded ratio"),
		key("rate-up", []string{"rup"}, KeyRateUp, order.ByNumber, "Upload rate"),
		key("rate-down", []string{"rdn"}, KeyRateDown, order.ByNumber, "Download rate"),
		key("peers", []string{"prs"}, KeyPeers, order.ByNumber, "Connected peers"),
		key("seeds", []string{"sds"}, KeySeeds, order.ByNumber, "Known seeds"),
		key("eta", nil, KeyEta, order.BySpan, "Estimated time until completion"),
		key("tracker", []string{"trk"}, KeyTracker, order.ByText, "Announce URL of the first tracker"),
	}
}

var (
	sortOnce sync.Once
	sortReg  *order.Registry
)

// Sorts returns the torrent sort key registry.
func Sorts() *order.Registry {

	sortOnce.Do(func() {
		var err error
		sortReg, err = order.NewRegistry(sortKeys()...)
		if err != nil {
			panic(err)
		}
	})
	return sortReg
}

// ParseSort parses sort keys separated by commas or whitespace.
func ParseSort(text string) (order.Order, error) {
	return order.ParseText(Sorts(), text)
}

// DefaultSort is the order a torrent list starts with.
func DefaultSort() order.Order {
	ord, _ := order.Parse(Sorts(), "name")
	return ord
}

// NeededKeys returns the attributes a filtered and sorted list reads, always including the id.
func NeededKeys(flt filter.Expression, ord order.Order) (keys []string) {

	keys = []string{KeyId}
	for _, key := range append(flt.NeededKeys(), ord.NeededKeys()...) {
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return
}
