package torrent

// Record attribute keys.
const (
	KeyId          = "id"
	KeyName        = "name"
	KeyPath        = "path"
	KeyComment     = "comment"
	KeyCreator     = "creator"
	KeyError       = "error"
	KeyTracker     = "tracker"
	KeyStatus      = "status"
	KeyPrivate     = "private"
	KeyPercentDone = "%downloaded"
	KeySize        = "size-final"
	KeyDownloaded  = "size-downloaded"
	KeyUploaded    = "size-uploaded"
	KeyRatio       = "ratio"
	KeyRateUp      = "rate-up"
	KeyRateDown    = "rate-down"
	KeyPeers       = "peers-connected"
	KeySeeds       = "peers-seeding"
	KeyEta         = "timespan-eta"
)

// Columns maps each attribute to its column type in the store.
var Columns = map[string]string{
	KeyId:          "BIGINT",
	KeyName:        "VARCHAR",
	KeyPath:        "VARCHAR",
	KeyComment:     "VARCHAR",
	KeyCreator:     "VARCHAR",
	KeyError:       "VARCHAR",
	KeyTracker:     "VARCHAR",
	KeyStatus:      "VARCHAR[]",
	KeyPrivate:     "BOOLEAN",
	KeyPercentDone: "DOUBLE",
	KeySize:        "BIGINT",
	KeyDownloaded:  "BIGINT",
	KeyUploaded:    "BIGINT",
	KeyRatio:       "DOUBLE",
	KeyRateUp:      "DOUBLE",
	KeyRateDown:    "DOUBLE",
	KeyPeers:       "BIGINT",
	KeySeeds:       "BIGINT",
	KeyEta:         "BIGINT",
}
