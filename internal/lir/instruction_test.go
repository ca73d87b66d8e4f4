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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestInstruction_OperandPartition(t *testing.T) {
    v0 := Var(K_int, 0)
    v1 := Var(K_int, 1)
    v2 := Var(K_int, 2)
    v3 := Var(K_int, 3)
    p := New(OpAdd, v0, false, 1, 1, v1, v2, v3)
    require.Equal(t, 1, p.OperandCount(Output))
    require.Equal(t, 2, p.OperandCount(Input))
    require.Equal(t, 2, p.OperandCount(Temp))
    require.Equal(t, Value(v0), p.OperandAt(Output, 0))
    require.Equal(t, Value(v1), p.OperandAt(Input, 0))
    require.Equal(t, Value(v2), p.OperandAt(Input, 1))
    require.Equal(t, Value(v2), p.OperandAt(Temp, 0))
    require.Equal(t, Value(v3), p.OperandAt(Temp, 1))
    require.True(t, p.HasOperands())
}

func TestInstruction_FixedOperandsAreNotAllocated(t *testing.T) {
    v1 := Var(K_int, 1)
    p := New(OpStore, Illegal, false, 0, 0, ConstInt(42), SlotAt(K_int, 3), v1)
    require.Equal(t, 0, p.OperandCount(Output))
    require.Equal(t, 1, p.OperandCount(Input))
    require.Equal(t, 0, p.OperandCount(Temp))
    require.Equal(t, Value(v1), p.OperandAt(Input, 0))
    require.Equal(t, Value(ConstInt(42)), p.Operand(0))
    require.Equal(t, Value(SlotAt(K_int, 3)), p.Operand(1))
    require.Equal(t, Value(v1), p.Operand(2))
    require.Equal(t, Illegal, p.Operand(3))
    require.Equal(t, Illegal, p.Result())
}

func TestInstruction_AddressParts(t *testing.T) {
    vr := Var(K_long, 0)
    vb := Var(K_object, 1)
    vi := Var(K_int, 2)
    p := New(OpLoad, vr, false, 0, 0, NewAddress(K_long, vb, vi, 8))
    require.Equal(t, 1, p.OperandCount(Output))
    require.Equal(t, 2, p.OperandCount(Input))
    require.Equal(t, 0, p.OperandCount(Temp))
    require.Equal(t, Value(vb), p.OperandAt(Input, 0))
    require.Equal(t, Value(vi), p.OperandAt(Input, 1))

    /* resolving a part rebuilds the address around it */
    p.SetOperandAt(Input, 0, Reg(K_object, 11))
    a, ok := p.Operand(0).(*Address)
    require.True(t, ok)
    require.Equal(t, Value(Reg(K_object, 11)), a.Base)
    require.Equal(t, Value(vi), a.Index)
    require.Equal(t, int32(8), a.Disp)
}

func TestInstruction_RegisterAddressIsFixed(t *testing.T) {
    vr := Var(K_long, 0)
    ra := NewAddress(K_long, Reg(K_object, 3), Reg(K_int, 4), 16)
    p := New(OpLoad, vr, false, 0, 0, ra)
    require.Equal(t, 1, p.OperandCount(Output))
    require.Equal(t, 0, p.OperandCount(Input))
    require.Equal(t, Value(ra), p.Operand(0))
}

func TestInstruction_SetOperandChecks(t *testing.T) {
    v0 := Var(K_int, 0)
    v1 := Var(K_int, 1)
    p := New(OpNeg, v0, false, 0, 0, v1)
    require.Panics(t, func() { p.SetOperandAt(Input, 0, Illegal) })
    require.Panics(t, func() { p.OperandAt(Input, 1) })
    require.Panics(t, func() { p.OperandAt(Temp, 0) })

    /* a slot resolves exactly once */
    p.SetOperandAt(Input, 0, Reg(K_int, 5))
    require.Equal(t, Value(Reg(K_int, 5)), p.OperandAt(Input, 0))
    require.Panics(t, func() { p.SetOperandAt(Input, 0, Reg(K_int, 6)) })
}

func TestInstruction_MoveNeedsResult(t *testing.T) {
    require.Panics(t, func() { New(OpMove, Illegal, false, 0, 0, ConstInt(1)) })
    p := NewMove(Var(K_int, 0), ConstInt(7))
    require.Equal(t, 1, p.OperandCount(Output))
    require.Equal(t, 0, p.OperandCount(Input))
}

func TestInstruction_AllocatableOnly(t *testing.T) {
    p := New(OpReturn, Illegal, false, 0, 0, ConstLong(0))
    require.False(t, p.HasOperands())
    q := New(OpCall, Var(K_long, 0), true, 0, 0)
    require.True(t, q.HasOperands())
}

func TestInstruction_CloneBranch(t *testing.T) {
    p := NewBranch(CondLT, Var(K_int, 0), ConstInt(10), 1, 2)
    q := p.Clone()
    require.True(t, q.ReplaceTarget(1, 7))
    require.Equal(t, 7, q.TrueTarget())
    require.Equal(t, 1, p.TrueTarget())
    require.Equal(t, 2, p.FalseTarget())
    require.False(t, p.ReplaceTarget(9, 3))
}
