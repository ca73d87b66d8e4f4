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

type Opcode uint8

const (
    OpMove Opcode = iota
    OpAdd
    OpSub
    OpMul
    OpNeg
    OpCmp
    OpLoad
    OpStore
    OpBranch
    OpJump
    OpReturn
    OpCall
)

var _OpNames = [...]string {
    OpMove   : "move",
    OpAdd    : "add",
    OpSub    : "sub",
    OpMul    : "mul",
    OpNeg    : "neg",
    OpCmp    : "cmp",
    OpLoad   : "load",
    OpStore  : "store",
    OpBranch : "branch",
    OpJump   : "jump",
    OpReturn : "return",
    OpCall   : "call",
}

func (self Opcode) String() string {
    if int(self) < len(_OpNames) {
        return _OpNames[self]
    } else {
        return fmt.Sprintf("op(%d)", self)
    }
}

type Cond uint8

const (
    CondEQ Cond = iota
    CondNE
    CondLT
    CondLE
    CondGT
    CondGE
)

var _CondNames = [...]string {
    CondEQ: "eq",
    CondNE: "ne",
    CondLT: "lt",
    CondLE: "le",
    CondGT: "gt",
    CondGE: "ge",
}

func (self Cond) String() string {
    if int(self) < len(_CondNames) {
        return _CondNames[self]
    } else {
        return fmt.Sprintf("cond(%d)", self)
    }
}

// NewBranch builds a conditional branch comparing x against y. Targets are
// basic block ids, resolved against the CFG arena by the owner of the graph.
func NewBranch(cond Cond, x Value, y Value, ifTrue int, ifFalse int) *Instruction {
    p := New(OpBranch, Illegal, false, 0, 0, x, y)
    p.Cond = cond
    p.Targets = []int { ifTrue, ifFalse }
    return p
}

// NewJump builds an unconditional jump to the given block id.
func NewJump(target int) *Instruction {
    p := New(OpJump, Illegal, false, 0, 0)
    p.Targets = []int { target }
    return p
}

// NewReturn builds a return of v, which may be Illegal for void returns.
func NewReturn(v Value) *Instruction {
    if IsIllegal(v) {
        return New(OpReturn, Illegal, false, 0, 0)
    } else {
        return New(OpReturn, Illegal, false, 0, 0, v)
    }
}

// NewMove builds a move of src into dst.
func NewMove(dst Value, src Value) *Instruction {
    return New(OpMove, dst, false, 0, 0, src)
}

// IsBranch checks for conditional branches.
func (self *Instruction) IsBranch() bool {
    return self.Op == OpBranch
}

func (self *Instruction) IsJump() bool {
    return self.Op == OpJump
}

func (self *Instruction) IsReturn() bool {
    return self.Op == OpReturn
}

// HasTargets checks whether the instruction transfers control to explicit
// block targets.
func (self *Instruction) HasTargets() bool {
    return len(self.Targets) != 0
}

// TrueTarget returns the block id taken when a conditional branch passes.
func (self *Instruction) TrueTarget() int {
    if !self.IsBranch() {
        panic(fmt.Sprintf("lir: not a branch: %s", self))
    }
    return self.Targets[0]
}

// FalseTarget returns the block id taken when a conditional branch fails.
func (self *Instruction) FalseTarget() int {
    if !self.IsBranch() {
        panic(fmt.Sprintf("lir: not a branch: %s", self))
    }
    return self.Targets[1]
}

// ReplaceTarget rewrites every occurrence of the old block id with the new
// one, and reports whether anything was rewritten.
func (self *Instruction) ReplaceTarget(old int, new int) bool {
    rt := false
    for i, t := range self.Targets {
        if t == old {
            rt = true
            self.Targets[i] = new
        }
    }
    return rt
}
