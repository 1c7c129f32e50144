package domain

import "math"

// Point is a position in the unit square used by the topology view
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// VisualizationLayout is the derived view rendered by the topology graph.
// UPFCoords is index-aligned with UPF index.
type VisualizationLayout struct {
	UPFCoords         []Point          `json:"upfCoords"`
	GNBAssignments    map[string][]int `json:"gnbAssignments"`
	Links             []Link           `json:"links"`
	DNSName           string           `json:"dnsName"`
	DNSUPFConnections []int            `json:"dnsUpfConnections"`
}

// GenerateLayout places the record's UPFs on a grid inside the unit square
// and copies the remaining fields through. It has no side effects and the
// result shares no collections with the record.
func GenerateLayout(record *TopologyRecord) *VisualizationLayout {
	if record == nil {
		record = DefaultTopology()
	}
	src := record.Clone()
	src.Normalize()

	return &VisualizationLayout{
		UPFCoords:         GridCoords(src.UPFCount),
		GNBAssignments:    src.GNBAssignments,
		Links:             src.Links,
		DNSName:           src.DNSName,
		DNSUPFConnections: src.DNSUPFConnections,
	}
}

// MaxLayoutUPFs bounds the coordinates generated for one layout. The record
// keeps its UPF count; only the view is truncated.
const MaxLayoutUPFs = 1 << 16

// GridCoords returns n points on a side x side grid where
// side = floor(sqrt(n)) + 1. Cell (row, col) maps to
// ((col+1)/(side+1), (row+1)/(side+1)), so every point lies strictly inside
// the unit square. n <= 0 yields an empty slice and n is capped at
// MaxLayoutUPFs.
func GridCoords(n int) []Point {
	if n <= 0 {
		return []Point{}
	}
	if n > MaxLayoutUPFs {
		n = MaxLayoutUPFs
	}

	side := gridSide(n)
	scale := float64(side + 1)
	coords := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/side, i%side
		coords = append(coords, Point{
			X: float64(col+1) / scale,
			Y: float64(row+1) / scale,
		})
	}
	return coords
}

// gridSide is floor(sqrt(n))+1, so perfect squares get a spare column (n=4 gives 3)
func gridSide(n int) int {
	return int(math.Floor(math.Sqrt(float64(n)))) + 1
}
