/*
 * Copyright 2025 bytejit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lir

import (
    `fmt`
    `math`
)

// Constant is an immediate value. Constants are never registered with the
// register allocator, their location is fixed by definition.
type Constant struct {
    kind Kind
    bits int64
}

const (
    _IntCacheSize = 100
)

var (
    intCache [_IntCacheSize]*Constant
)

var (
    IntMinus1  = &Constant { kind: K_int, bits: -1 }
    Long0      = &Constant { kind: K_long, bits: 0 }
    Long1      = &Constant { kind: K_long, bits: 1 }
    Float0     = constFloat(0.0)
    Float1     = constFloat(1.0)
    Double0    = constDouble(0.0)
    Double1    = constDouble(1.0)
    NullObject = &Constant { kind: K_object, bits: 0 }
)

func init() {
    for i := range intCache {
        intCache[i] = &Constant { kind: K_int, bits: int64(i) }
    }
}

func constFloat(v float32) *Constant {
    return &Constant { kind: K_float, bits: int64(math.Float32bits(v)) }
}

func constDouble(v float64) *Constant {
    return &Constant { kind: K_double, bits: int64(math.Float64bits(v)) }
}

// ConstInt returns the constant for v, using the shared small-integer cache
// when possible.
func ConstInt(v int32) *Constant {
    if v >= 0 && v < _IntCacheSize {
        return intCache[v]
    } else {
        return &Constant { kind: K_int, bits: int64(v) }
    }
}

func ConstLong(v int64) *Constant {
    switch v {
        case 0  : return Long0
        case 1  : return Long1
        default : return &Constant { kind: K_long, bits: v }
    }
}

func ConstFloat(v float32) *Constant {
    return constFloat(v)
}

func ConstDouble(v float64) *Constant {
    return constDouble(v)
}

func (self *Constant) Kind() Kind {
    return self.kind
}

func (self *Constant) AsInt() int32 {
    if self.kind != K_int {
        panic(fmt.Sprintf("lir: not an int constant: %s", self))
    }
    return int32(self.bits)
}

func (self *Constant) AsLong() int64 {
    if self.kind != K_long {
        panic(fmt.Sprintf("lir: not a long constant: %s", self))
    }
    return self.bits
}

func (self *Constant) AsFloat() float32 {
    if self.kind != K_float {
        panic(fmt.Sprintf("lir: not a float constant: %s", self))
    }
    return math.Float32frombits(uint32(self.bits))
}

func (self *Constant) AsDouble() float64 {
    if self.kind != K_double {
        panic(fmt.Sprintf("lir: not a double constant: %s", self))
    }
    return math.Float64frombits(uint64(self.bits))
}

func (self *Constant) String() string {
    switch self.kind {
        case K_int    : return fmt.Sprintf("int:%d", int32(self.bits))
        case K_long   : return fmt.Sprintf("long:%d", self.bits)
        case K_float  : return fmt.Sprintf("float:%g", self.AsFloat())
        case K_double : return fmt.Sprintf("double:%g", self.AsDouble())
        case K_object : return "null"
        default       : return fmt.Sprintf("const:%s", self.kind)
    }
}
