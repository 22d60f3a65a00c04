// internal/system/render.go
package system

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/internal/utils"
	"tutti-frutti-td/pkg/geom"
	"tutti-frutti-td/pkg/render"
	"tutti-frutti-td/pkg/spline"
)

const (
	pathSegments = 120  // на сколько отрезков разбивается путь при отрисовке
	turnLerp     = 0.35 // доля поворота ствола к цели за кадр
)

// RenderSystem рисует поле и сущности
type RenderSystem struct {
	ecs     *entity.ECS
	path    *spline.ArcLengthTable
	noBuild []geom.Polygon
	palette render.Palette
	scale   float64
	angles  map[types.EntityID]float64 // отображаемый угол ствола
}

func NewRenderSystem(ecs *entity.ECS, path *spline.ArcLengthTable, noBuild []geom.Polygon, palette render.Palette, displayScale float64) *RenderSystem {
	return &RenderSystem{
		ecs:     ecs,
		path:    path,
		noBuild: noBuild,
		palette: palette,
		scale:   displayScale,
		angles:  make(map[types.EntityID]float64),
	}
}

// Draw рисует кадр. selected - башня, у которой показать радиус.
func (s *RenderSystem) Draw(screen *ebiten.Image, selected types.EntityID) {
	screen.Fill(s.palette.Background)
	s.drawNoBuild(screen)
	s.drawPath(screen)

	if tower, ok := s.ecs.Towers[selected]; ok {
		if pos, ok := s.ecs.Positions[selected]; ok {
			r := float32(tower.Range * s.scale)
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r, s.palette.Range, true)
		}
	}

	// Затем отрисовка сущностей с Renderable: по слоям, внутри слоя по ID
	ids := make([]types.EntityID, 0, len(s.ecs.Renderables))
	for id := range s.ecs.Renderables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := s.ecs.Renderables[ids[i]].Layer, s.ecs.Renderables[ids[j]].Layer
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})
	for id := range s.angles {
		if _, ok := s.ecs.Towers[id]; !ok {
			delete(s.angles, id)
		}
	}
	for _, id := range ids {
		rend := s.ecs.Renderables[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		c := rend.Color
		if _, frozen := s.ecs.FreezeEffects[id]; frozen {
			c = s.palette.Frozen
		} else if _, slowed := s.ecs.SlowEffects[id]; slowed {
			c = s.palette.Slowed
		}
		if _, flash := s.ecs.DamageFlashes[id]; flash {
			c = render.LightenColor(c)
		}
		if bloon, ok := s.ecs.Bloons[id]; ok && bloon.Dying {
			c = render.Fade(c, 0.4)
		}
		if rend.Shape == component.ShapeSquare {
			x, y := float32(pos.X)-rend.Radius, float32(pos.Y)-rend.Radius
			vector.DrawFilledRect(screen, x, y, 2*rend.Radius, 2*rend.Radius, c, false)
			continue
		}
		if rend.HasStroke {
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), rend.Radius+s.palette.StrokeWidth, s.palette.Stroke, true)
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), rend.Radius, c, true)

		if tower, ok := s.ecs.Towers[id]; ok && !tower.Kind.IsTrap() {
			angle := utils.LerpAngle(s.angles[id], tower.Angle, turnLerp)
			s.angles[id] = angle
			ex := pos.X + math.Cos(angle)*float64(rend.Radius)
			ey := pos.Y + math.Sin(angle)*float64(rend.Radius)
			vector.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(ex), float32(ey), s.palette.StrokeWidth, render.DarkenColor(rend.Color), true)
		}
	}
}

func (s *RenderSystem) drawPath(screen *ebiten.Image) {
	if s.path == nil {
		return
	}
	total := s.path.Length()
	prev := s.path.PointAtDistance(0)
	for i := 1; i <= pathSegments; i++ {
		next := s.path.PointAtDistance(total * float64(i) / pathSegments)
		vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(next.X), float32(next.Y), s.palette.PathWidth, s.palette.Path, true)
		prev = next
	}
}

func (s *RenderSystem) drawNoBuild(screen *ebiten.Image) {
	for _, poly := range s.noBuild {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), s.palette.StrokeWidth, s.palette.NoBuild, true)
		}
	}
}
