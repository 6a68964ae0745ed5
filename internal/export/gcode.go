package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// GCodeProfile is a firmware dialect's command set, the FFF analogue of the
// teacher's per-controller GCodeProfile: a name plus the handful of
// commands and formatting rules that differ between Marlin-family and
// Klipper-family firmware.
type GCodeProfile struct {
	Name          string
	CommentPrefix string
	DecimalPlaces int
	RapidMove     string // G0
	FeedMove      string // G1
	StartCode     []string
	EndCode       []string
	SetHotendTemp string // "M104 S%.0f"
	SetBedTemp    string // "M140 S%.0f"
	FanOn         string // "M106 S255"
	FanOff        string // "M107"
}

// GCodeProfiles are the built-in firmware dialects, mirroring the teacher's
// GCodeProfiles table (one entry per controller family it supports).
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Marlin",
		CommentPrefix: ";",
		DecimalPlaces: 3,
		RapidMove:     "G0",
		FeedMove:      "G1",
		StartCode:     []string{"G90", "M82", "G28"},
		EndCode:       []string{"M104 S0", "M140 S0", "M107"},
		SetHotendTemp: "M104 S%.0f",
		SetBedTemp:    "M140 S%.0f",
		FanOn:         "M106 S255",
		FanOff:        "M107",
	},
	{
		Name:          "RepRap",
		CommentPrefix: ";",
		DecimalPlaces: 3,
		RapidMove:     "G0",
		FeedMove:      "G1",
		StartCode:     []string{"G90", "M82", "G28"},
		EndCode:       []string{"M104 S0", "M140 S0", "M107"},
		SetHotendTemp: "G10 P0 S%.0f",
		SetBedTemp:    "M140 S%.0f",
		FanOn:         "M106 S255",
		FanOff:        "M107",
	},
	{
		Name:          "Klipper",
		CommentPrefix: ";",
		DecimalPlaces: 4,
		RapidMove:     "G0",
		FeedMove:      "G1",
		StartCode:     []string{"G90", "M82", "G28", "PRINT_START"},
		EndCode:       []string{"PRINT_END"},
		SetHotendTemp: "M104 S%.0f",
		SetBedTemp:    "M140 S%.0f",
		FanOn:         "M106 S255",
		FanOff:        "M107",
	},
}

// GetGCodeProfile returns a profile by name, or Marlin if not found.
func GetGCodeProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[0]
}

// GCodeExporter writes a flat GCode file via a strings.Builder, in the
// teacher's generator style: a profile-driven comment prefix and decimal
// formatting, a fixed header/footer, and one line per move. Extruded
// filament length is tracked as a running absolute E value, converted from
// the deposited melt volume via the configured filament cross-section.
type GCodeExporter struct {
	profile          GCodeProfile
	filamentDiameter float64 // mm

	b         strings.Builder
	eTotal    float64
	lastSpeed float64
	lastPos   geom.Point3
	havePos   bool
}

// NewGCodeExporter constructs an exporter using the named firmware profile.
// filamentDiameterMM converts deposited mm3/mm of melt into the E-axis
// length Marlin-family firmware expects.
func NewGCodeExporter(profileName string, filamentDiameterMM float64) *GCodeExporter {
	g := &GCodeExporter{profile: GetGCodeProfile(profileName), filamentDiameter: filamentDiameterMM}
	g.writeHeader()
	return g
}

func (g *GCodeExporter) writeHeader() {
	p := g.profile
	g.b.WriteString(g.comment(fmt.Sprintf("generated by slicecore, profile %s", p.Name)))
	for _, code := range p.StartCode {
		g.b.WriteString(code + "\n")
	}
	g.b.WriteString("\n")
}

func (g *GCodeExporter) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + "\n"
}

func (g *GCodeExporter) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}

func (g *GCodeExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	g.b.WriteString(g.comment(fmt.Sprintf("LAYER:%d Z:%.3f", layerIndex, micronsToMM(float64(z)))))
	return nil
}

func (g *GCodeExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	return g.writeMove(g.profile.FeedMove, point, speed, mm3PerMM, feature)
}

func (g *GCodeExporter) writeMove(command string, point geom.Point3, speed, mm3PerMM float64, feature plan.FeatureType) error {
	p := g.profile
	line := fmt.Sprintf("%s X%s Y%s Z%s", command,
		g.format(micronsToMM(float64(point.X))), g.format(micronsToMM(float64(point.Y))), g.format(micronsToMM(float64(point.Z))))

	if mm3PerMM > 0 && g.havePos {
		segmentLen := distance(g.lastPos, point)
		g.eTotal += g.mm3ToFilamentLength(mm3PerMM * micronsToMM(segmentLen))
		line += fmt.Sprintf(" E%s", g.format(g.eTotal))
	}
	if speed != g.lastSpeed {
		line += fmt.Sprintf(" F%s", g.format(speed*60)) // mm/s -> mm/min
		g.lastSpeed = speed
	}
	line += " " + p.CommentPrefix + feature.String()
	g.b.WriteString(line + "\n")

	g.lastPos = point
	g.havePos = true
	return nil
}

// mm3ToFilamentLength converts a deposited melt volume (mm3) into filament
// length (mm), via the configured filament's circular cross-section.
func (g *GCodeExporter) mm3ToFilamentLength(mm3 float64) float64 {
	r := g.filamentDiameter / 2
	area := math.Pi * r * r
	if area <= 0 {
		return 0
	}
	return mm3 / area
}

func (g *GCodeExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	return g.writeMove(g.profile.RapidMove, point, speed, 0, feature)
}

func (g *GCodeExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	g.b.WriteString("\n")
	return nil
}

func (g *GCodeExporter) writeFooter() {
	g.b.WriteString("\n" + g.comment("job complete"))
	for _, code := range g.profile.EndCode {
		g.b.WriteString(code + "\n")
	}
}

// Finish appends the firmware footer and writes the accumulated GCode to
// path.
func (g *GCodeExporter) Finish(path string) error {
	g.writeFooter()
	return os.WriteFile(path, []byte(g.b.String()), 0o644)
}

// String returns the GCode accumulated so far, without writing the footer.
func (g *GCodeExporter) String() string {
	return g.b.String()
}
