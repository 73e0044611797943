// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the snapshot messages. The layout is
//
//	message Dynamic { string map = 1; repeated Sector sectors = 2; repeated Sidedef sidedefs = 3; }
//	message Sector  { fixed32 floor = 1; fixed32 ceiling = 2; fixed32 light = 3; }
//	message Sidedef { string top = 1; string bottom = 2; string middle = 3; }
const (
	fieldMapName  protowire.Number = 1
	fieldSectors  protowire.Number = 2
	fieldSidedefs protowire.Number = 3

	fieldFloor   protowire.Number = 1
	fieldCeiling protowire.Number = 2
	fieldLight   protowire.Number = 3

	fieldTop    protowire.Number = 1
	fieldBottom protowire.Number = 2
	fieldMiddle protowire.Number = 3
)

// MarshalBinary returns the zstd compressed protobuf encoding of d
func (d *Dynamic) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldMapName, protowire.BytesType)
	b = protowire.AppendString(b, d.MapName)
	for _, s := range d.Sectors {
		var m []byte
		m = appendFloat(m, fieldFloor, s.Interval.Min)
		m = appendFloat(m, fieldCeiling, s.Interval.Max)
		m = appendFloat(m, fieldLight, s.LightLevel)
		b = protowire.AppendTag(b, fieldSectors, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	for _, s := range d.Sidedefs {
		var m []byte
		m = appendString(m, fieldTop, s.TopTexture)
		m = appendString(m, fieldBottom, s.BottomTexture)
		m = appendString(m, fieldMiddle, s.MiddleTexture)
		b = protowire.AppendTag(b, fieldSidedefs, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "snapshot encoder")
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil), nil
}

// UnmarshalBinary replaces d with the snapshot in data
func (d *Dynamic) UnmarshalBinary(data []byte) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return errors.Wrap(err, "snapshot decoder")
	}
	defer dec.Close()
	b, err := dec.DecodeAll(data, nil)
	if err != nil {
		return errors.Wrap(err, "snapshot decompress")
	}

	var r Dynamic
	err = consumeMessage(b, func(f field) error {
		switch f.num {
		case fieldMapName:
			r.MapName = string(f.bytes)
		case fieldSectors:
			var s SectorState
			if err := consumeMessage(f.bytes, func(f field) error {
				if f.typ != protowire.Fixed32Type {
					return errors.Errorf("field %d: wire type %d", f.num, f.typ)
				}
				x := math.Float32frombits(f.fixed32)
				switch f.num {
				case fieldFloor:
					s.Interval.Min = x
				case fieldCeiling:
					s.Interval.Max = x
				case fieldLight:
					s.LightLevel = x
				}
				return nil
			}); err != nil {
				return errors.Wrapf(err, "sector %d", len(r.Sectors))
			}
			r.Sectors = append(r.Sectors, s)
		case fieldSidedefs:
			var s SidedefState
			if err := consumeMessage(f.bytes, func(f field) error {
				switch f.num {
				case fieldTop:
					s.TopTexture = string(f.bytes)
				case fieldBottom:
					s.BottomTexture = string(f.bytes)
				case fieldMiddle:
					s.MiddleTexture = string(f.bytes)
				}
				return nil
			}); err != nil {
				return errors.Wrapf(err, "sidedef %d", len(r.Sidedefs))
			}
			r.Sidedefs = append(r.Sidedefs, s)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	*d = r
	return nil
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

type field struct {
	num     protowire.Number
	typ     protowire.Type
	bytes   []byte
	fixed32 uint32
}

// consumeMessage calls f for every bytes and fixed32 field of b. Other wire
// types are skipped.
func consumeMessage(b []byte, f func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		fd := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			fd.bytes, n = protowire.ConsumeBytes(b)
		case protowire.Fixed32Type:
			fd.fixed32, n = protowire.ConsumeFixed32(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType && typ != protowire.Fixed32Type {
			continue
		}
		if err := f(fd); err != nil {
			return err
		}
	}
	return nil
}
