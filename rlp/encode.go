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

// Package rlp implements Recursive Length Prefix encoding, scoped to the
// byte-string / list / big.Int / uint64 / fixed-array shapes this
// module's domain types actually need. Per spec.md §1, RLP's general
// wire-format machinery is an external-collaborator concern; this
// package is the concrete adapter, mirroring the teacher's own `rlp`
// subpackage idiom (EncodeRLP/DecodeRLP, Encoder/Decoder interfaces).
package rlp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Encoder is implemented by types with custom RLP encodings, mirroring
// the teacher's `(tx *Transaction) EncodeRLP(w io.Writer) error`.
type Encoder interface {
	EncodeRLP(w io.Writer) error
}

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, reflect.ValueOf(val)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v reflect.Value) error {
	if !v.IsValid() {
		buf.WriteByte(0x80)
		return nil
	}

	// Custom encoders take priority, including through an interface value.
	if enc, ok := v.Interface().(Encoder); ok {
		return enc.EncodeRLP(buf)
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			buf.WriteByte(0x80)
			return nil
		}
		return encode(buf, v.Elem())
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return encodeBytes(buf, rlpBytes(v))
		}
		return encodeList(buf, v)
	case reflect.String:
		return encodeBytes(buf, []byte(v.String()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint(buf, v.Uint())
	case reflect.Int:
		return encodeUint(buf, uint64(v.Int()))
	case reflect.Bool:
		if v.Bool() {
			return encodeUint(buf, 1)
		}
		return encodeUint(buf, 0)
	case reflect.Struct:
		if bi, ok := v.Interface().(big.Int); ok {
			return encodeBigInt(buf, &bi)
		}
		return encodeStruct(buf, v)
	case reflect.Interface:
		return encode(buf, v.Elem())
	default:
		if bi, ok := v.Interface().(*big.Int); ok {
			return encodeBigInt(buf, bi)
		}
		return fmt.Errorf("rlp: unsupported kind %v", v.Kind())
	}
}

func rlpBytes(v reflect.Value) []byte {
	if v.Kind() == reflect.Array {
		b := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(b), v)
		return b
	}
	return v.Bytes()
}

func encodeStruct(buf *bytes.Buffer, v reflect.Value) error {
	if bi, ok := v.Interface().(big.Int); ok {
		return encodeBigInt(buf, &bi)
	}
	var inner bytes.Buffer
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		if tag := f.Tag.Get("rlp"); tag == "-" {
			continue
		}
		if err := encode(&inner, v.Field(i)); err != nil {
			return err
		}
	}
	return writeList(buf, inner.Bytes())
}

func encodeList(buf *bytes.Buffer, v reflect.Value) error {
	var inner bytes.Buffer
	for i := 0; i < v.Len(); i++ {
		if err := encode(&inner, v.Index(i)); err != nil {
			return err
		}
	}
	return writeList(buf, inner.Bytes())
}

func writeList(buf *bytes.Buffer, content []byte) error {
	if len(content) < 56 {
		buf.WriteByte(0xc0 + byte(len(content)))
		buf.Write(content)
		return nil
	}
	lenBytes := uintToMinimalBytes(uint64(len(content)))
	buf.WriteByte(0xf7 + byte(len(lenBytes)))
	buf.Write(lenBytes)
	buf.Write(content)
	return nil
}

func encodeBytes(buf *bytes.Buffer, b []byte) error {
	if len(b) == 1 && b[0] < 0x80 {
		buf.WriteByte(b[0])
		return nil
	}
	if len(b) < 56 {
		buf.WriteByte(0x80 + byte(len(b)))
		buf.Write(b)
		return nil
	}
	lenBytes := uintToMinimalBytes(uint64(len(b)))
	buf.WriteByte(0xb7 + byte(len(lenBytes)))
	buf.Write(lenBytes)
	buf.Write(b)
	return nil
}

func encodeUint(buf *bytes.Buffer, i uint64) error {
	return encodeBytes(buf, uintToMinimalBytes(i))
}

func encodeBigInt(buf *bytes.Buffer, bi *big.Int) error {
	if bi == nil {
		return encodeBytes(buf, nil)
	}
	if bi.Sign() < 0 {
		return errors.New("rlp: cannot encode negative big.Int")
	}
	if bi.Sign() == 0 {
		return encodeBytes(buf, nil)
	}
	return encodeBytes(buf, bi.Bytes())
}

// uintToMinimalBytes is the "big-endian minimal-byte sequence" encoding
// spec.md §6 requires for integers (zero ⇒ empty byte string).
func uintToMinimalBytes(i uint64) []byte {
	if i == 0 {
		return nil
	}
	var b [8]byte
	n := 0
	for ; i > 0; i >>= 8 {
		b[n] = byte(i)
		n++
	}
	out := make([]byte, n)
	for j := 0; j < n; j++ {
		out[j] = b[n-1-j]
	}
	return out
}

// ListSize returns the encoded size of a list whose payload is
// contentSize bytes, matching the teacher's `rlp.ListSize` call in
// `Transaction.DecodeRLP`.
func ListSize(contentSize uint64) uint64 {
	if contentSize < 56 {
		return 1 + contentSize
	}
	return uint64(1+len(uintToMinimalBytes(contentSize))) + contentSize
}
