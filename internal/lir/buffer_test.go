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

func mklist(nb int) (*List, []*Instruction) {
    ls := new(List)
    ops := make([]*Instruction, nb)
    for i := 0; i < nb; i++ {
        ops[i] = NewMove(Var(K_int, i), ConstInt(int32(i)))
        ls.Append(ops[i])
    }
    return ls, ops
}

func TestInsertionBuffer_Commit(t *testing.T) {
    ls, ops := mklist(6)
    ia := NewMove(Var(K_int, 100), ConstInt(0))
    ib := NewMove(Var(K_int, 101), ConstInt(0))
    ic := NewMove(Var(K_int, 102), ConstInt(0))

    /* two inserts at 2 coalesce, one more at 5 */
    buf := new(InsertionBuffer)
    buf.Init(ls)
    buf.Append(2, ia)
    buf.Append(2, ib)
    buf.Append(5, ic)
    require.Equal(t, 2, buf.NumInsertionPoints())
    require.Equal(t, 2, buf.IndexAt(0))
    require.Equal(t, 2, buf.CountAt(0))
    require.Equal(t, 5, buf.IndexAt(1))
    require.Equal(t, 1, buf.CountAt(1))

    /* original at former index 2 shifts by the two ops before it */
    ls.AppendBuffer(buf)
    require.Equal(t, 9, ls.Len())
    expect := []*Instruction { ops[0], ops[1], ia, ib, ops[2], ops[3], ops[4], ic, ops[5] }
    for i, p := range expect {
        require.Same(t, p, ls.At(i))
    }

    /* committing detaches the buffer */
    require.False(t, buf.Initialized())
}

func TestInsertionBuffer_AppendAtListEnd(t *testing.T) {
    ls, ops := mklist(2)
    ia := NewMove(Var(K_int, 100), ConstInt(0))
    buf := new(InsertionBuffer)
    buf.Init(ls)
    buf.Append(2, ia)
    ls.AppendBuffer(buf)
    require.Equal(t, 3, ls.Len())
    require.Same(t, ops[1], ls.At(1))
    require.Same(t, ia, ls.At(2))
}

func TestInsertionBuffer_OrderingChecks(t *testing.T) {
    ls, _ := mklist(4)
    buf := new(InsertionBuffer)
    require.Panics(t, func() { buf.Append(0, NewJump(0)) })

    buf.Init(ls)
    buf.Append(3, NewJump(0))
    require.Panics(t, func() { buf.Append(1, NewJump(0)) })
    require.Panics(t, func() { buf.Append(-1, NewJump(0)) })
}

func TestInsertionBuffer_Rebind(t *testing.T) {
    la, _ := mklist(2)
    lb, _ := mklist(2)
    buf := new(InsertionBuffer)
    buf.Init(la)
    require.Panics(t, func() { buf.Init(la) })
    require.Panics(t, func() { lb.AppendBuffer(buf) })

    /* a finished buffer serves another list */
    buf.Append(0, NewJump(0))
    la.AppendBuffer(buf)
    buf.Init(lb)
    buf.Move(1, ConstInt(1), Var(K_int, 7))
    lb.AppendBuffer(buf)
    require.Equal(t, 3, lb.Len())
    require.Equal(t, "v7 = move int:1", lb.At(1).String())
}

func TestInsertionBuffer_DebugVerify(t *testing.T) {
    old := debugBuffer
    debugBuffer = true
    defer func() { debugBuffer = old }()

    /* well-formed appends pass the check */
    ls, _ := mklist(3)
    buf := new(InsertionBuffer)
    buf.Init(ls)
    buf.Append(1, NewJump(0))
    buf.Append(1, NewJump(0))
    buf.Append(2, NewJump(0))
    require.Equal(t, 2, buf.NumInsertionPoints())

    /* a count that no longer covers the recorded ops is caught */
    buf.indexAndCount[1] = 0
    require.Panics(t, func() { buf.Append(3, NewJump(0)) })
}

func TestList_RemoveAt(t *testing.T) {
    ls, ops := mklist(3)
    p := ls.RemoveAt(1)
    require.Same(t, ops[1], p)
    require.Equal(t, 2, ls.Len())
    require.Same(t, ops[2], ls.Last())
}
