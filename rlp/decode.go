// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Kind identifies the shape of the next RLP value in a Stream.
type Kind int

const (
	Byte Kind = iota
	String
	List
)

var ErrUnexpectedEOF = errors.New("rlp: unexpected EOF")

// Decoder is implemented by types with custom RLP decodings, mirroring
// the teacher's `(tx *Transaction) DecodeRLP(s *rlp.Stream) error`.
type Decoder interface {
	DecodeRLP(s *Stream) error
}

// Stream is a cursor over a byte-string RLP payload, in the shape the
// teacher's transaction codec expects (s.Kind(), s.Decode(&dst)).
type Stream struct {
	data []byte
	pos  int
}

// NewStream wraps b for streaming decode.
func NewStream(b []byte) *Stream { return &Stream{data: b} }

// Kind reports the kind and payload size of the next value without
// consuming it.
func (s *Stream) Kind() (Kind, uint64, error) {
	if s.pos >= len(s.data) {
		return 0, 0, io.EOF
	}
	b := s.data[s.pos]
	switch {
	case b < 0x80:
		return Byte, 1, nil
	case b < 0xb8:
		return String, uint64(b - 0x80), nil
	case b < 0xc0:
		sizeLen := int(b - 0xb7)
		size, err := readUint(s.data[s.pos+1 : s.pos+1+sizeLen])
		return String, size, err
	case b < 0xf8:
		return List, uint64(b - 0xc0), nil
	default:
		sizeLen := int(b - 0xf7)
		size, err := readUint(s.data[s.pos+1 : s.pos+1+sizeLen])
		return List, size, err
	}
}

func readUint(b []byte) (uint64, error) {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// Decode decodes the next value into dst, which must be a pointer.
func (s *Stream) Decode(dst interface{}) error {
	raw, err := s.nextRaw()
	if err != nil {
		return err
	}
	return decodeInto(raw, reflect.ValueOf(dst).Elem())
}

// nextRaw consumes and returns the raw payload bytes (without the
// length-prefix header) of the next value, advancing the cursor past
// the whole encoded item.
func (s *Stream) nextRaw() ([]byte, error) {
	if s.pos >= len(s.data) {
		return nil, ErrUnexpectedEOF
	}
	b := s.data[s.pos]
	switch {
	case b < 0x80:
		s.pos++
		return s.data[s.pos-1 : s.pos], nil
	case b < 0xb8:
		size := int(b - 0x80)
		start := s.pos + 1
		s.pos = start + size
		return s.data[start:s.pos], nil
	case b < 0xc0:
		sizeLen := int(b - 0xb7)
		size, _ := readUint(s.data[s.pos+1 : s.pos+1+sizeLen])
		start := s.pos + 1 + sizeLen
		s.pos = start + int(size)
		return s.data[start:s.pos], nil
	case b < 0xf8:
		size := int(b - 0xc0)
		start := s.pos + 1
		s.pos = start + size
		return s.data[start:s.pos], nil
	default:
		sizeLen := int(b - 0xf7)
		size, _ := readUint(s.data[s.pos+1 : s.pos+1+sizeLen])
		start := s.pos + 1 + sizeLen
		s.pos = start + int(size)
		return s.data[start:s.pos], nil
	}
}

// DecodeBytes parses a full RLP payload into val.
func DecodeBytes(b []byte, val interface{}) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("rlp: Decode requires non-nil pointer")
	}
	if dec, ok := val.(Decoder); ok {
		return dec.DecodeRLP(NewStream(b))
	}
	return decodeInto(b, rv.Elem())
}

func decodeInto(raw []byte, v reflect.Value) error {
	if v.CanAddr() {
		if dec, ok := v.Addr().Interface().(Decoder); ok {
			return dec.DecodeRLP(NewStream(raw))
		}
	}
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return decodeInto(raw, v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			if v.Kind() == reflect.Array {
				reflect.Copy(v, reflect.ValueOf(raw))
				return nil
			}
			v.SetBytes(raw)
			return nil
		}
		return decodeList(raw, v)
	case reflect.String:
		v.SetString(string(raw))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := readUint(raw)
		if err != nil {
			return err
		}
		v.SetUint(n)
		return nil
	case reflect.Bool:
		n, _ := readUint(raw)
		v.SetBool(n != 0)
		return nil
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(big.Int{}) {
			bi := new(big.Int).SetBytes(raw)
			v.Set(reflect.ValueOf(*bi))
			return nil
		}
		return decodeStruct(raw, v)
	default:
		return fmt.Errorf("rlp: unsupported kind %v", v.Kind())
	}
}

func decodeStruct(raw []byte, v reflect.Value) error {
	s := NewStream(raw)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		if tag := f.Tag.Get("rlp"); tag == "-" {
			continue
		}
		if tag := f.Tag.Get("rlp"); tag == "nil" && s.pos < len(s.data) && s.data[s.pos] == 0x80 {
			s.pos++
			continue
		}
		fieldRaw, err := s.nextRaw()
		if err != nil {
			return err
		}
		if err := decodeInto(fieldRaw, v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeList(raw []byte, v reflect.Value) error {
	s := NewStream(raw)
	var items []reflect.Value
	elemType := v.Type().Elem()
	for s.pos < len(s.data) {
		itemRaw, err := s.nextRaw()
		if err != nil {
			return err
		}
		elem := reflect.New(elemType).Elem()
		if err := decodeInto(itemRaw, elem); err != nil {
			return err
		}
		items = append(items, elem)
	}
	if v.Kind() == reflect.Array {
		for i, it := range items {
			v.Index(i).Set(it)
		}
		return nil
	}
	out := reflect.MakeSlice(v.Type(), len(items), len(items))
	for i, it := range items {
		out.Index(i).Set(it)
	}
	v.Set(out)
	return nil
}
