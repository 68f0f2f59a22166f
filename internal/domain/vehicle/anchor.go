package vehicle

// DefaultFillFraction is assumed when no fuel anchor can be used
const DefaultFillFraction = 0.5

// AnchorType selects how the current fuel level is estimated
type AnchorType string

const (
	// AnchorPercent uses a direct fuel gauge reading
	AnchorPercent AnchorType = "percent"
	// AnchorDistanceSinceFill backs out fuel from km driven since the last full tank
	AnchorDistanceSinceFill AnchorType = "last_full_fillup"
)

// FuelAnchor is the evidence used to estimate remaining fuel
type FuelAnchor struct {
	Type        AnchorType
	Percent     *float64
	KmSinceFill *float64
}

// PercentAnchor builds an anchor from a gauge reading
func PercentAnchor(percent float64) FuelAnchor {
	return FuelAnchor{Type: AnchorPercent, Percent: &percent}
}

// DistanceAnchor builds an anchor from km driven since the last fill-up
func DistanceAnchor(km float64) FuelAnchor {
	return FuelAnchor{Type: AnchorDistanceSinceFill, KmSinceFill: &km}
}

// ParseAnchorType maps user input onto a known anchor type
func ParseAnchorType(s string) (AnchorType, bool) {
	switch AnchorType(s) {
	case AnchorPercent:
		return AnchorPercent, true
	case AnchorDistanceSinceFill, "distance":
		return AnchorDistanceSinceFill, true
	}
	return "", false
}
