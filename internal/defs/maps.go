// internal/defs/maps.go
package defs

import (
	"fmt"

	"tutti-frutti-td/pkg/geom"
	"tutti-frutti-td/pkg/spline"
)

// MapDefinition - карта: сплайн, по которому идут фрукты, и многоугольники,
// где строить нельзя.
type MapDefinition struct {
	Name          string           `json:"name"`
	Width         float64          `json:"width"`
	Height        float64          `json:"height"`
	ControlPoints []spline.Point   `json:"controlPoints"`
	NoBuild       [][]spline.Point `json:"noBuild"`
}

// Bounds - прямоугольник поля.
func (m *MapDefinition) Bounds() geom.Rect {
	return geom.Rect{MaxX: m.Width, MaxY: m.Height}
}

// NoBuildPolygons переводит сырые данные в многоугольники.
func (m *MapDefinition) NoBuildPolygons() []geom.Polygon {
	polys := make([]geom.Polygon, 0, len(m.NoBuild))
	for _, p := range m.NoBuild {
		polys = append(polys, geom.Polygon(p))
	}
	return polys
}

// Path строит путь карты с параметризацией по длине дуги.
func (m *MapDefinition) Path() (*spline.ArcLengthTable, error) {
	curve, err := spline.NewCatmullRom(m.ControlPoints)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", m.Name, err)
	}
	return spline.NewArcLengthTable(curve, spline.DefaultSamples), nil
}
