package protocol

// Edit operations accepted over the wire.
const (
	OpRaise         = "raise"
	OpLower         = "lower"
	OpFlatten       = "flatten"
	OpSetElevation  = "set_elevation"
	OpToggleWater   = "toggle_water"
	OpToggleFeature = "toggle_feature"
)

type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
	// "observer" receives terrain and deltas; "editor" may also send EDIT
	// and BUILD_QUERY.
	Role string `json:"role,omitempty"`
}

type WorldParams struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Seed    int64  `json:"seed"`
	BiomeID string `json:"biome_id"`
}

type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ClientID        string      `json:"client_id"`
	WorldParams     WorldParams `json:"world_params"`
}

// TerrainMsg carries the full grid: the dense elevation RLE-encoded, the
// sparse maps keyed "x,y".
type TerrainMsg struct {
	Type      string         `json:"type"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Encoding  string         `json:"encoding"` // always "RLE"
	Elevation string         `json:"elevation"`
	Water     map[string]int `json:"water"`
	Features  map[string]int `json:"features"`
	BiomeID   string         `json:"biome_id"`
}

type CellState struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Elevation int `json:"elevation"`
	Water     int `json:"water"`
	Feature   int `json:"feature"`
}

type TerrainChangedMsg struct {
	Type  string      `json:"type"`
	Cells []CellState `json:"cells"`
}

type EditMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Op              string `json:"op"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
	// Op-specific payloads.
	Elevation int `json:"elevation,omitempty"`
	Feature   int `json:"feature,omitempty"`
}

type BuildQueryMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	QueryID         string `json:"query_id,omitempty"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	BuildingType    string `json:"building_type"`
}

type BuildResultMsg struct {
	Type    string `json:"type"`
	QueryID string `json:"query_id,omitempty"`
	OK      bool   `json:"ok"`
	Reason  string `json:"reason,omitempty"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
