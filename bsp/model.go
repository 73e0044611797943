// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"

	"godoom/geom"
	"godoom/math/vec"
)

// Data is the raw level as produced by an importer
type Data struct {
	Name       string
	Vertices   []vec.Vec2
	Sectors    []Sector
	Sidedefs   []Sidedef
	Linedefs   []Linedef
	Segs       []Seg
	Subsectors []Subsector
	Nodes      []Node
	Things     []Thing
}

// Map is a loaded level. It is never modified after NewMap returns.
type Map struct {
	Data

	bbox             geom.AABB2
	sectorSubsectors [][]int
	sectorNeighbours [][]int
	sectorLinedefs   [][]int
}

// NewMap checks all cross references of d and derives the lookup tables
// used by the locator and the sector movers.
func NewMap(d Data) (*Map, error) {
	m := &Map{Data: d}
	// derived fields are written into the subsectors
	m.Subsectors = append([]Subsector(nil), d.Subsectors...)
	if len(m.Sectors) == 0 {
		return nil, errors.Errorf("map %q has no sectors", m.Name)
	}
	if len(m.Subsectors) == 0 {
		return nil, errors.Errorf("map %q has no subsectors", m.Name)
	}
	if err := m.checkLinedefs(); err != nil {
		return nil, errors.Wrapf(err, "map %q", m.Name)
	}
	if err := m.buildSubsectors(); err != nil {
		return nil, errors.Wrapf(err, "map %q", m.Name)
	}
	if err := m.checkNodes(); err != nil {
		return nil, errors.Wrapf(err, "map %q", m.Name)
	}
	m.buildSectorTables()
	return m, nil
}

func (m *Map) checkLinedefs() error {
	for i, s := range m.Sidedefs {
		if s.Sector < 0 || s.Sector >= len(m.Sectors) {
			return errors.Errorf("sidedef %d: bad sector %d", i, s.Sector)
		}
	}
	for i, l := range m.Linedefs {
		for _, v := range l.Vertices {
			if v < 0 || v >= len(m.Vertices) {
				return errors.Errorf("linedef %d: bad vertex %d", i, v)
			}
		}
		if l.Sidedefs[0] < 0 || l.Sidedefs[0] >= len(m.Sidedefs) {
			return errors.Errorf("linedef %d: bad front sidedef %d", i, l.Sidedefs[0])
		}
		if b := l.Sidedefs[1]; b != NoSidedef && (b < 0 || b >= len(m.Sidedefs)) {
			return errors.Errorf("linedef %d: bad back sidedef %d", i, b)
		}
	}
	for i, s := range m.Segs {
		if s.Linedef == MiniSeg {
			continue
		}
		if s.Linedef < 0 || s.Linedef >= len(m.Linedefs) {
			return errors.Errorf("seg %d: bad linedef %d", i, s.Linedef)
		}
		if s.Side != 0 && s.Side != 1 {
			return errors.Errorf("seg %d: bad side %d", i, s.Side)
		}
		if m.Linedefs[s.Linedef].Sidedefs[s.Side] == NoSidedef {
			return errors.Errorf("seg %d: linedef %d has no side %d", i, s.Linedef, s.Side)
		}
	}
	return nil
}

// buildSubsectors derives the polygon, bbox and, when the importer left it
// at -1, the sector of every subsector from its segs.
func (m *Map) buildSubsectors() error {
	m.bbox = geom.EmptyAABB2()
	for i := range m.Subsectors {
		ss := &m.Subsectors[i]
		if ss.NumSegs <= 0 || ss.FirstSeg < 0 || ss.FirstSeg+ss.NumSegs > len(m.Segs) {
			return errors.Errorf("subsector %d: bad seg range %d+%d", i, ss.FirstSeg, ss.NumSegs)
		}
		segs := m.Segs[ss.FirstSeg : ss.FirstSeg+ss.NumSegs]
		ss.Polygon = make([]vec.Vec2, 0, len(segs))
		for _, s := range segs {
			ss.Polygon = append(ss.Polygon, s.Vertices[0])
		}
		ss.BBox = geom.AABB2FromPoints(ss.Polygon...)
		m.bbox = m.bbox.Union(ss.BBox)
		if ss.Sector < 0 {
			ss.Sector = m.segSector(segs)
		}
		if ss.Sector < 0 || ss.Sector >= len(m.Sectors) {
			return errors.Errorf("subsector %d: bad sector %d", i, ss.Sector)
		}
	}
	for _, v := range m.Vertices {
		m.bbox = m.bbox.AddPoint(v)
	}
	return nil
}

func (m *Map) segSector(segs []Seg) int {
	for _, s := range segs {
		if s.Linedef == MiniSeg {
			continue
		}
		sd := m.Linedefs[s.Linedef].Sidedefs[s.Side]
		return m.Sidedefs[sd].Sector
	}
	return -1
}

// checkNodes makes sure every node only references nodes with a smaller
// index. The root is the last node so every descent terminates.
func (m *Map) checkNodes() error {
	for i, n := range m.Nodes {
		if n.PartitionDir == (vec.Vec2{}) {
			return errors.Errorf("node %d: zero partition direction", i)
		}
		for side, c := range n.Children {
			if c.IsSubsector() {
				if c.Index() >= len(m.Subsectors) {
					return errors.Errorf("node %d: child %d: bad subsector %d", i, side, c.Index())
				}
				continue
			}
			if c.Index() >= i {
				return errors.Errorf("node %d: child %d: node %d is not below its parent", i, side, c.Index())
			}
		}
	}
	return nil
}

func (m *Map) buildSectorTables() {
	m.sectorSubsectors = make([][]int, len(m.Sectors))
	for i, ss := range m.Subsectors {
		m.sectorSubsectors[ss.Sector] = append(m.sectorSubsectors[ss.Sector], i)
	}
	m.sectorLinedefs = make([][]int, len(m.Sectors))
	m.sectorNeighbours = make([][]int, len(m.Sectors))
	seen := make(map[[2]int]bool)
	link := func(a, b int) {
		if a == b || seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		m.sectorNeighbours[a] = append(m.sectorNeighbours[a], b)
	}
	for i, l := range m.Linedefs {
		front := m.Sidedefs[l.Sidedefs[0]].Sector
		m.sectorLinedefs[front] = append(m.sectorLinedefs[front], i)
		if l.Sidedefs[1] == NoSidedef {
			continue
		}
		back := m.Sidedefs[l.Sidedefs[1]].Sector
		if back != front {
			m.sectorLinedefs[back] = append(m.sectorLinedefs[back], i)
		}
		link(front, back)
		link(back, front)
	}
}

// BBox returns the extent of all vertices and subsectors of the map
func (m *Map) BBox() geom.AABB2 {
	return m.bbox
}

// SectorSubsectors returns the indices of all subsectors of the sector
func (m *Map) SectorSubsectors(sector int) []int {
	return m.sectorSubsectors[sector]
}

// SectorNeighbours returns the sectors sharing a two sided linedef with the
// sector.
func (m *Map) SectorNeighbours(sector int) []int {
	return m.sectorNeighbours[sector]
}

// SectorLinedefs returns the linedefs with a side in the sector
func (m *Map) SectorLinedefs(sector int) []int {
	return m.sectorLinedefs[sector]
}

// SectorsWithTag returns all sectors whose tag is tag
func (m *Map) SectorsWithTag(tag int) []int {
	var r []int
	for i := range m.Sectors {
		if m.Sectors[i].Tag == tag {
			r = append(r, i)
		}
	}
	return r
}
