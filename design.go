package jersey

// Region identifiers. Stable across generation calls; export file naming and
// per-region color assignment key off them.
const (
	RegionBase   = "base"
	RegionTrim   = "trim"
	RegionName   = "name"
	RegionNumber = "number"
)

// Layer stackup and placement within the frame, mm.
const (
	baseThickness = 2
	trimThickness = 1
	textThickness = 2

	trimZ = baseThickness
	textZ = baseThickness + trimThickness

	// Inward offset carving the trim ring from the silhouette.
	trimInset = 1.5

	numberCenterY = 68
	nameCenterY   = 108
)

// Default glyph sizes, mm.
const (
	DefaultNameSize   = 14
	DefaultNumberSize = 28
)

// Design is the typed input record for one generation call. Colors are
// carried per region as opaque identifiers; the core does not interpret them.
type Design struct {
	// Name is the player name line placed above the number.
	Name string
	// Number is the jersey number line.
	Number string
	Style  Style
	// Trim enables the trim ring region. DefaultDesign enables it.
	Trim bool
	// NameSize and NumberSize are glyph sizes in mm. Non-positive values
	// take the package defaults.
	NameSize   float32
	NumberSize float32

	BaseColor   string
	TrimColor   string
	NameColor   string
	NumberColor string
}

// DefaultDesign returns the design produced by an untouched input form.
func DefaultDesign() Design {
	return Design{
		Style:       StyleCollege,
		Trim:        true,
		NameSize:    DefaultNameSize,
		NumberSize:  DefaultNumberSize,
		BaseColor:   "#1d428a",
		TrimColor:   "#ffc72c",
		NameColor:   "#ffffff",
		NumberColor: "#ffffff",
	}
}

func (d Design) normalized() Design {
	if !(d.NameSize > 0) {
		d.NameSize = DefaultNameSize
	}
	if !(d.NumberSize > 0) {
		d.NumberSize = DefaultNumberSize
	}
	return d
}

// DesignFromFields maps a field-identifier to primitive-value record onto a
// Design. Schema validation is the input collaborator's responsibility:
// unknown field identifiers are ignored and malformed values keep their
// defaults. Never panics.
func DesignFromFields(fields map[string]any) Design {
	d := DefaultDesign()
	for k, v := range fields {
		switch k {
		case "name":
			d.Name = asString(v, d.Name)
		case "number":
			d.Number = asString(v, d.Number)
		case "style":
			d.Style = ParseStyle(asString(v, ""))
		case "trim":
			d.Trim = asBool(v, d.Trim)
		case "nameSize":
			d.NameSize = asFloat(v, d.NameSize)
		case "numberSize":
			d.NumberSize = asFloat(v, d.NumberSize)
		case "baseColor":
			d.BaseColor = asString(v, d.BaseColor)
		case "trimColor":
			d.TrimColor = asString(v, d.TrimColor)
		case "nameColor":
			d.NameColor = asString(v, d.NameColor)
		case "numberColor":
			d.NumberColor = asString(v, d.NumberColor)
		}
	}
	return d
}

func asString(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func asBool(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func asFloat(v any, fallback float32) float32 {
	switch n := v.(type) {
	case float32:
		return n
	case float64:
		return float32(n)
	case int:
		return float32(n)
	}
	return fallback
}
