// SPDX-License-Identifier: GPL-2.0-or-later

// Package mapfile reads levels stored as JSON. The file holds the vertices,
// sectors, lines and the GL node tree of a map as produced by a node
// builder.
package mapfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"godoom/bsp"
	"godoom/geom"
	"godoom/math/vec"
)

//go:embed map.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("map.schema.json", schemaSource)

type sector struct {
	Floor          float32 `json:"floor"`
	Ceiling        float32 `json:"ceiling"`
	FloorTexture   string  `json:"floor_texture,omitempty"`
	CeilingTexture string  `json:"ceiling_texture,omitempty"`
	Light          float32 `json:"light"`
	Special        int     `json:"special,omitempty"`
	Tag            int     `json:"tag,omitempty"`
}

type sidedef struct {
	Sector int       `json:"sector"`
	Offset *vec.Vec2 `json:"offset,omitempty"`
	Top    string    `json:"top,omitempty"`
	Bottom string    `json:"bottom,omitempty"`
	Middle string    `json:"middle,omitempty"`
}

type linedef struct {
	V       [2]int `json:"v"`
	Flags   int    `json:"flags,omitempty"`
	Special int    `json:"special,omitempty"`
	Tag     int    `json:"tag,omitempty"`
	Sides   [2]int `json:"sides"`
}

type seg struct {
	V       [2]int `json:"v"`
	Linedef int    `json:"linedef"`
	Side    int    `json:"side,omitempty"`
}

type subsector struct {
	Sector   *int `json:"sector,omitempty"`
	FirstSeg int  `json:"first_seg"`
	NumSegs  int  `json:"num_segs"`
}

type child struct {
	Node      *int `json:"node,omitempty"`
	Subsector *int `json:"subsector,omitempty"`
}

type node struct {
	Point    vec.Vec2      `json:"point"`
	Dir      vec.Vec2      `json:"dir"`
	BBox     [2][4]float32 `json:"bbox"`
	Children [2]child      `json:"children"`
}

type thing struct {
	Pos   vec.Vec2 `json:"pos"`
	Angle float32  `json:"angle,omitempty"`
	Type  int      `json:"type"`
	Flags int      `json:"flags,omitempty"`
}

type file struct {
	Name       string      `json:"name"`
	Vertices   []vec.Vec2  `json:"vertices"`
	Sectors    []sector    `json:"sectors"`
	Sidedefs   []sidedef   `json:"sidedefs"`
	Linedefs   []linedef   `json:"linedefs"`
	Segs       []seg       `json:"segs"`
	Subsectors []subsector `json:"subsectors"`
	Nodes      []node      `json:"nodes,omitempty"`
	Things     []thing     `json:"things,omitempty"`
}

// Load reads a map from r
func Load(r io.Reader) (*bsp.Map, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "mapfile")
	}
	d, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	m, err := bsp.NewMap(d)
	if err != nil {
		return nil, errors.Wrapf(err, "mapfile %s", d.Name)
	}
	return m, nil
}

func LoadFile(path string) (*bsp.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "mapfile")
	}
	defer f.Close()
	return Load(f)
}

// Decode validates raw against the map schema and converts it. The result is
// not checked for consistency, bsp.NewMap does that.
func Decode(raw []byte) (bsp.Data, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return bsp.Data{}, errors.Wrap(err, "mapfile")
	}
	if err := schema.Validate(v); err != nil {
		return bsp.Data{}, errors.Wrap(err, "mapfile")
	}
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return bsp.Data{}, errors.Wrap(err, "mapfile")
	}
	return f.data()
}

func (f *file) data() (bsp.Data, error) {
	d := bsp.Data{
		Name:       f.Name,
		Vertices:   f.Vertices,
		Sectors:    make([]bsp.Sector, len(f.Sectors)),
		Sidedefs:   make([]bsp.Sidedef, len(f.Sidedefs)),
		Linedefs:   make([]bsp.Linedef, len(f.Linedefs)),
		Segs:       make([]bsp.Seg, len(f.Segs)),
		Subsectors: make([]bsp.Subsector, len(f.Subsectors)),
		Nodes:      make([]bsp.Node, len(f.Nodes)),
		Things:     make([]bsp.Thing, len(f.Things)),
	}
	for i, s := range f.Sectors {
		d.Sectors[i] = bsp.Sector{
			FloorHeight:    s.Floor,
			CeilingHeight:  s.Ceiling,
			FloorTexture:   s.FloorTexture,
			CeilingTexture: s.CeilingTexture,
			LightLevel:     s.Light,
			Special:        s.Special,
			Tag:            s.Tag,
		}
	}
	for i, s := range f.Sidedefs {
		d.Sidedefs[i] = bsp.Sidedef{
			TopTexture:    s.Top,
			BottomTexture: s.Bottom,
			MiddleTexture: s.Middle,
			Sector:        s.Sector,
		}
		if s.Offset != nil {
			d.Sidedefs[i].TextureOffset = *s.Offset
		}
	}
	for i, l := range f.Linedefs {
		d.Linedefs[i] = bsp.Linedef{
			Vertices: l.V,
			Flags:    bsp.LinedefFlags(l.Flags),
			Special:  l.Special,
			Tag:      l.Tag,
			Sidedefs: l.Sides,
		}
	}
	for i, s := range f.Segs {
		for _, v := range s.V {
			if v >= len(f.Vertices) {
				return bsp.Data{}, errors.Errorf("mapfile: seg %d: vertex %d out of range", i, v)
			}
		}
		d.Segs[i] = bsp.Seg{
			Vertices: [2]vec.Vec2{f.Vertices[s.V[0]], f.Vertices[s.V[1]]},
			Linedef:  s.Linedef,
			Side:     s.Side,
		}
	}
	for i, s := range f.Subsectors {
		d.Subsectors[i] = bsp.Subsector{Sector: -1, FirstSeg: s.FirstSeg, NumSegs: s.NumSegs}
		if s.Sector != nil {
			d.Subsectors[i].Sector = *s.Sector
		}
	}
	for i, n := range f.Nodes {
		d.Nodes[i] = bsp.Node{
			PartitionPoint: n.Point,
			PartitionDir:   n.Dir,
		}
		for j := 0; j < 2; j++ {
			b := n.BBox[j]
			d.Nodes[i].ChildBBoxes[j] = geom.NewAABB2(vec.Vec2{b[0], b[1]}, vec.Vec2{b[2], b[3]})
			switch c := n.Children[j]; {
			case c.Subsector != nil:
				d.Nodes[i].Children[j] = bsp.SubsectorRef(*c.Subsector)
			case c.Node != nil:
				d.Nodes[i].Children[j] = bsp.NodeRef(*c.Node)
			}
		}
	}
	for i, t := range f.Things {
		d.Things[i] = bsp.Thing{Position: t.Pos, Angle: t.Angle, Type: t.Type, Flags: t.Flags}
	}
	return d, nil
}
