package game

import (
	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// minDragFraction is the shortest sticker drag, as a fraction of a cell, that turns a layer.
const minDragFraction = 0.2

// dragState tracks one left button gesture.
type dragState struct {
	active bool
	onCube bool
	hit    cube.Hit
	lastX  float64
	lastY  float64
}

// attachMouse routes pointer input from w: dragging a sticker turns its layer, dragging the
// background orbits the camera and scrolling zooms.
func (g *game) attachMouse(w window.Window) {
	w.SetMouseButtonCallback(g.handleMouseButton)
	w.SetMouseMoveCallback(g.handleMouseMove)
	w.SetScrollCallback(func(delta float32) {
		g.view.Camera().Controller().Zoom(delta)
	})
}

func (g *game) handleMouseButton(button common.MouseButton, state common.KeyState, x, y float64) {
	if button != common.MouseButtonLeft {
		return
	}

	if state == common.KeyPressed {
		hit, ok := g.cube.Pick(g.screenRay(x, y))
		g.mu.Lock()
		g.drag = dragState{active: true, onCube: ok && hit.Slot >= 0, hit: hit, lastX: x, lastY: y}
		g.mu.Unlock()
		return
	}

	g.mu.Lock()
	d := g.drag
	g.drag = dragState{}
	g.mu.Unlock()
	if !d.active || !d.onCube {
		return
	}

	end, ok := planeIntersection(g.screenRay(x, y), d.hit.Point, d.hit.Normal)
	if !ok {
		return
	}
	drag := end.Sub(d.hit.Point)
	if drag.Len() < minDragFraction*g.cube.Geometry().CellSize {
		return
	}
	t, ok := cube.DragTurn(d.hit, drag)
	if !ok {
		return
	}
	if err := g.animator.Enqueue(t); err != nil {
		g.logger.Warn("turn dropped", zap.Stringer("turn", t), zap.Error(err))
	}
}

func (g *game) handleMouseMove(x, y float64) {
	g.mu.Lock()
	if !g.drag.active || g.drag.onCube {
		g.mu.Unlock()
		return
	}
	dx, dy := x-g.drag.lastX, y-g.drag.lastY
	g.drag.lastX, g.drag.lastY = x, y
	g.mu.Unlock()

	g.view.Camera().Controller().Drag(dx, dy)
}

func (g *game) screenRay(x, y float64) cube.Ray {
	w, h := g.view.Viewport()
	return g.view.Camera().ScreenRay(x, y, w, h)
}

// planeIntersection returns where r crosses the plane through p with normal n.
func planeIntersection(r cube.Ray, p, n mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := r.Direction.Dot(n)
	if mgl32.Abs(denom) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := p.Sub(r.Origin).Dot(n) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}
