package core

// ModifierKind tags what a modifier overrides.
type ModifierKind string

const (
	// ModifierLink joins two hexes that are not physically adjacent
	ModifierLink ModifierKind = "link"
	// ModifierBridgeBypass lets one unit cross an un-bridged edge
	ModifierBridgeBypass ModifierKind = "bridgeBypass"
)

// AttachmentKind names what a modifier is attached to.
type AttachmentKind string

const (
	AttachHex    AttachmentKind = "hex"
	AttachEdge   AttachmentKind = "edge"
	AttachUnit   AttachmentKind = "unit"
	AttachGlobal AttachmentKind = "global"
)

// HexLink is the payload of a link modifier.
type HexLink struct {
	From HexKey `json:"from"`
	To   HexKey `json:"to"`
}

// Modifier is an ephemeral rule override published by the engine.
// An empty Owner means the modifier applies to every player.
type Modifier struct {
	ID         string         `json:"id"`
	Owner      string         `json:"ownerPlayerId,omitempty"`
	Kind       ModifierKind   `json:"kind"`
	Attachment AttachmentKind `json:"attachment"`
	HexKey     HexKey         `json:"hexKey,omitempty"`
	EdgeKey    EdgeKey        `json:"edgeKey,omitempty"`
	UnitID     string         `json:"unitId,omitempty"`
	Link       *HexLink       `json:"link,omitempty"`
}

// AppliesTo reports whether the modifier is usable by playerID
func (m Modifier) AppliesTo(playerID string) bool {
	return m.Owner == "" || m.Owner == playerID
}

// Connects reports whether a link modifier joins a and b in either direction
func (m Modifier) Connects(a, b HexKey) bool {
	if m.Kind != ModifierLink || m.Link == nil {
		return false
	}
	return (m.Link.From == a && m.Link.To == b) || (m.Link.From == b && m.Link.To == a)
}
