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
)

type Kind uint8

const (
    K_illegal Kind = iota
    K_int
    K_long
    K_float
    K_double
    K_object
)

var _KindNames = [...]string {
    K_illegal : "illegal",
    K_int     : "int",
    K_long    : "long",
    K_float   : "float",
    K_double  : "double",
    K_object  : "object",
}

func (self Kind) String() string {
    if int(self) < len(_KindNames) {
        return _KindNames[self]
    } else {
        return fmt.Sprintf("kind(%d)", self)
    }
}

// Value is a single LIR operand value: a physical register, a virtual
// variable, a constant, a stack slot or a base+index address.
type Value interface {
    Kind() Kind
    String() string
}

type _Illegal struct{}

// Illegal is the marker value for "no operand" slots.
var Illegal Value = _Illegal{}

func (self _Illegal) Kind() Kind     { return K_illegal }
func (self _Illegal) String() string { return "<illegal>" }

// Register is a physical machine register.
type Register struct {
    num  int
    kind Kind
}

func Reg(kind Kind, num int) Register {
    return Register { num: num, kind: kind }
}

func (self Register) Num() int       { return self.num }
func (self Register) Kind() Kind     { return self.kind }
func (self Register) String() string { return fmt.Sprintf("reg:%d", self.num) }

// Variable is a virtual value whose location is resolved by the register
// allocator after this instruction is built.
type Variable struct {
    id   int
    kind Kind
}

func Var(kind Kind, id int) Variable {
    return Variable { id: id, kind: kind }
}

func (self Variable) Id() int        { return self.id }
func (self Variable) Kind() Kind     { return self.kind }
func (self Variable) String() string { return fmt.Sprintf("v%d", self.id) }

// Address is a base+index memory form. The base must be a variable or a
// register, the index may be Illegal.
type Address struct {
    Base  Value
    Index Value
    Disp  int32
    kind  Kind
}

func NewAddress(kind Kind, base Value, index Value, disp int32) *Address {
    if !IsVariableOrRegister(base) {
        panic(fmt.Sprintf("lir: address base must be a variable or register, not %s", base))
    }
    return &Address {
        Base  : base,
        Index : index,
        Disp  : disp,
        kind  : kind,
    }
}

func (self *Address) Kind() Kind { return self.kind }

func (self *Address) String() string {
    if IsIllegal(self.Index) {
        return fmt.Sprintf("[%s + %d]", self.Base, self.Disp)
    } else {
        return fmt.Sprintf("[%s + %s + %d]", self.Base, self.Index, self.Disp)
    }
}

func IsIllegal(v Value) bool {
    return v == nil || v.Kind() == K_illegal
}

func IsRegister(v Value) bool {
    _, ok := v.(Register)
    return ok
}

func IsVariable(v Value) bool {
    _, ok := v.(Variable)
    return ok
}

func IsConstant(v Value) bool {
    p, ok := v.(*Constant)
    return ok && p.kind != K_illegal
}

func IsStackSlot(v Value) bool {
    _, ok := v.(*StackSlot)
    return ok
}

func IsAddress(v Value) bool {
    _, ok := v.(*Address)
    return ok
}

func IsVariableOrRegister(v Value) bool {
    return IsVariable(v) || IsRegister(v)
}
