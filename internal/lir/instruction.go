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
    `strings`
)

// OperandMode partitions the allocator-visible operands of an instruction
// for live interval computation.
type OperandMode uint8

const (
    // Output is an operand defined by the instruction, live after it.
    Output OperandMode = iota

    // Input is an operand used by the instruction, live before it. Unless it
    // is also a temp operand it must not be modified by the instruction.
    Input

    // Temp is an operand both modified and used by the instruction.
    Temp
)

var _ModeNames = [...]string {
    Output : "output",
    Input  : "input",
    Temp   : "temp",
}

func (self OperandMode) String() string {
    if int(self) < len(_ModeNames) {
        return _ModeNames[self]
    } else {
        return fmt.Sprintf("mode(%d)", self)
    }
}

/* operand slot, one of three shapes:
 *   direct   - value is set, the location is already fixed
 *   variable - index >= 0 points into the allocator operand list
 *   address  - addr is set, base / offs index the allocator operand list
 *              for the variable sub-parts (-1 when fixed) */
type _Slot struct {
    value Value
    addr  *Address
    index int
    base  int
    offs  int
}

var illegalSlot = &_Slot {
    value : Illegal,
    index : -1,
    base  : -1,
    offs  : -1,
}

func directSlot(v Value) *_Slot {
    return &_Slot {
        value : v,
        index : -1,
        base  : -1,
        offs  : -1,
    }
}

func variableSlot(i int) *_Slot {
    return &_Slot {
        index : i,
        base  : -1,
        offs  : -1,
    }
}

// Instruction is a single LIR instruction: an opcode, a result slot and an
// ordered array of operand slots. The operands that must be known to the
// register allocator (variables and registers, never constants or stack
// slots) are collected into a flat list partitioned as follows.
//
//   <---- output count ----> <---- input count ----> <---- temp count ---->
//  +------------------------+-----------------------+----------------------+
//  |     output operands    |     input operands    |    temp operands     |
//  +------------------------+-----------------------+----------------------+
//
// Operands that are both input and temp live between the pure inputs and the
// pure temps, and are counted in both partitions.
type Instruction struct {
    Op      Opcode
    Cond    Cond
    Id      int
    HasCall bool
    Targets []int

    result   *_Slot
    operands []*_Slot
    allocOps []Value

    nout   int
    nin    int
    ntmpin int
    ntmp   int
}

// New builds an instruction from a result value and an operand array
// organized as follows.
//
//                            <---- tempInput ----> <------- temp ------->
//  +------------------------+---------------------+----------------------+
//  |     input operands     | input+temp operands |    temp operands     |
//  +------------------------+---------------------+----------------------+
//
// The result is Illegal for instructions that produce no value. hasCall
// marks instructions that destroy every caller-saved register.
func New(op Opcode, result Value, hasCall bool, tempInput int, temp int, operands ...Value) *Instruction {
    if op == OpMove && IsIllegal(result) {
        panic("lir: a move must produce a result")
    }

    /* create the bare instruction */
    p := &Instruction {
        Op       : op,
        Id       : -1,
        HasCall  : hasCall,
        operands : make([]*_Slot, len(operands)),
        allocOps : make([]Value, 0, len(operands) + 1),
    }

    /* classify the result, then the operand array */
    p.result = p.initOutput(result)
    p.initInputsAndTemps(tempInput, temp, operands)
    p.verifyOperands()
    return p
}

func (self *Instruction) initOutput(output Value) *_Slot {
    if output == nil {
        panic("lir: nil result operand")
    }

    /* no result produced */
    if IsIllegal(output) {
        return illegalSlot
    }

    /* memory results carry their variable parts as inputs */
    if a, ok := output.(*Address); ok {
        return self.addAddress(a)
    }

    /* stack slots are already located */
    if IsStackSlot(output) {
        return directSlot(output)
    }

    /* variables and registers go to the allocator */
    self.allocOps = append(self.allocOps, output)
    self.nout++
    return variableSlot(len(self.allocOps) - 1)
}

/* addAddressPart registers a variable sub-part of an address as an input
 * operand and returns its index in the allocator operand list. Fixed parts
 * (registers, Illegal) contribute nothing and return -1. */
func (self *Instruction) addAddressPart(part Value) int {
    if IsVariable(part) {
        self.nin++
        self.allocOps = append(self.allocOps, part)
        return len(self.allocOps) - 1
    }
    if !IsRegister(part) && !IsIllegal(part) {
        panic(fmt.Sprintf("lir: invalid address part: %s", part))
    }
    return -1
}

func (self *Instruction) addAddress(a *Address) *_Slot {
    if !IsVariableOrRegister(a.Base) {
        panic(fmt.Sprintf("lir: address base must be a variable or register: %s", a))
    }

    /* only variable parts need resolving */
    base := self.addAddressPart(a.Base)
    offs := self.addAddressPart(a.Index)

    /* pure-register addresses are already located */
    if base == -1 && offs == -1 {
        return directSlot(a)
    }

    /* remember where the variable parts went */
    return &_Slot {
        addr  : a,
        index : -1,
        base  : base,
        offs  : offs,
    }
}

func (self *Instruction) addOperand(operand Value, isInput bool, isTemp bool) *_Slot {
    if operand == nil {
        panic("lir: nil operand")
    }

    /* empty slots stay empty */
    if IsIllegal(operand) {
        return illegalSlot
    }

    /* addresses are handled in a separate pass */
    if IsAddress(operand) {
        panic(fmt.Sprintf("lir: unexpected address operand: %s", operand))
    }

    /* constants and stack slots are already located */
    if IsConstant(operand) || IsStackSlot(operand) {
        return directSlot(operand)
    }

    /* everything else goes to the allocator, partition the counts */
    self.allocOps = append(self.allocOps, operand)
    switch {
        case isInput && isTemp : self.ntmpin++
        case isInput           : self.nin++
        case isTemp            : self.ntmp++
        default                : panic("lir: operand is neither input nor temp")
    }
    return variableSlot(len(self.allocOps) - 1)
}

func (self *Instruction) initInputsAndTemps(tempInput int, temp int, operands []Value) {
    if tempInput < 0 || temp < 0 || tempInput + temp > len(operands) {
        panic(fmt.Sprintf("lir: invalid operand partition: %d+%d of %d", tempInput, temp, len(operands)))
    }

    /* addresses first, their parts are all inputs and must precede the
     * pure inputs appended below to keep the input partition contiguous */
    for i, op := range operands {
        if a, ok := op.(*Address); ok {
            self.operands[i] = self.addAddress(a)
        }
    }

    /* input-only operands */
    z := 0
    for i := 0; i < len(operands) - tempInput - temp; i++ {
        if self.operands[z] == nil {
            self.operands[z] = self.addOperand(operands[z], true, false)
        }
        z++
    }

    /* operands that are both inputs and temps */
    for i := 0; i < tempInput; i++ {
        if self.operands[z] == nil {
            self.operands[z] = self.addOperand(operands[z], true, true)
        }
        z++
    }

    /* temp-only operands */
    for i := 0; i < temp; i++ {
        if self.operands[z] == nil {
            self.operands[z] = self.addOperand(operands[z], false, true)
        }
        z++
    }
}

func (self *Instruction) verifyOperands() {
    for i, s := range self.operands {
        if s == nil {
            panic(fmt.Sprintf("lir: operand slot %d was not classified", i))
        }
    }
    for _, v := range self.allocOps {
        if !IsVariableOrRegister(v) {
            panic(fmt.Sprintf("lir: allocator operands can only be variables and registers initially, not %s", v))
        }
    }
    if len(self.allocOps) != self.nout + self.nin + self.ntmpin + self.ntmp {
        panic(fmt.Sprintf("lir: operand partition sizes do not sum to %d", len(self.allocOps)))
    }
}

func (self *Instruction) slotValue(s *_Slot) Value {
    if s.addr == nil {
        if s.index >= 0 {
            return self.allocOps[s.index]
        } else {
            return s.value
        }
    }

    /* substitute the resolved address parts */
    base := s.addr.Base
    offs := s.addr.Index

    if s.base != -1 { base = self.allocOps[s.base] }
    if s.offs != -1 { offs = self.allocOps[s.offs] }

    /* nothing resolved yet */
    if base == s.addr.Base && offs == s.addr.Index {
        return s.addr
    }

    /* rebuild the address around the resolved parts */
    return &Address {
        Base  : base,
        Index : offs,
        Disp  : s.addr.Disp,
        kind  : s.addr.kind,
    }
}

// Result returns the result value, Illegal for instructions that produce
// none.
func (self *Instruction) Result() Value {
    return self.slotValue(self.result)
}

// Operand returns the index'th input or temp operand, Illegal when out of
// range.
func (self *Instruction) Operand(index int) Value {
    if index >= len(self.operands) {
        return Illegal
    }
    return self.slotValue(self.operands[index])
}

// HasOperands checks whether the allocator needs to look at this instruction
// at all.
func (self *Instruction) HasOperands() bool {
    return self.HasCall || len(self.allocOps) > 0
}

// OperandCount returns the size of a partition. An operand that is both
// input and temp is counted in both partitions, it is live at the read and
// at the write position.
func (self *Instruction) OperandCount(mode OperandMode) int {
    switch mode {
        case Output : return self.nout
        case Input  : return self.nin + self.ntmpin
        case Temp   : return self.ntmpin + self.ntmp
        default     : panic(fmt.Sprintf("lir: invalid operand mode: %s", mode))
    }
}

func (self *Instruction) operandIndex(mode OperandMode, index int) int {
    if index < 0 || index >= self.OperandCount(mode) {
        panic(fmt.Sprintf("lir: %s operand index out of range: %d", mode, index))
    }
    switch mode {
        case Output : return index
        case Input  : return index + self.nout
        default     : return index + self.nout + self.nin
    }
}

// OperandAt returns the index'th allocator operand of the given mode.
func (self *Instruction) OperandAt(mode OperandMode, index int) Value {
    return self.allocOps[self.operandIndex(mode, index)]
}

// SetOperandAt resolves a variable operand to its allocated location. The
// slot must still hold an unresolved variable and the location must be a
// legal value.
func (self *Instruction) SetOperandAt(mode OperandMode, index int, location Value) {
    i := self.operandIndex(mode, index)

    if IsIllegal(location) {
        panic(fmt.Sprintf("lir: cannot assign an illegal location to %s operand %d", mode, index))
    }
    if !IsVariable(self.allocOps[i]) {
        panic(fmt.Sprintf("lir: %s operand %d is already resolved to %s", mode, index, self.allocOps[i]))
    }

    self.allocOps[i] = location
}

// Clone returns a copy of the instruction with its own target and operand
// storage. Used when a branch is duplicated during graph rewriting.
func (self *Instruction) Clone() *Instruction {
    p := new(Instruction)
    *p = *self
    p.Targets = append([]int(nil), self.Targets...)
    p.allocOps = append([]Value(nil), self.allocOps...)
    p.operands = append([]*_Slot(nil), self.operands...)
    return p
}

func (self *Instruction) String() string {
    nb := len(self.operands)
    ss := make([]string, 0, nb)

    /* format every operand */
    for i := range self.operands {
        if v := self.Operand(i); !IsIllegal(v) {
            ss = append(ss, v.String())
        }
    }

    /* attach branch targets */
    for _, t := range self.Targets {
        ss = append(ss, fmt.Sprintf("bb_%d", t))
    }

    /* prepend the result if any */
    if r := self.Result(); !IsIllegal(r) {
        return fmt.Sprintf("%s = %s %s", r, self.Op, strings.Join(ss, ", "))
    } else {
        return fmt.Sprintf("%s %s", self.Op, strings.Join(ss, ", "))
    }
}
