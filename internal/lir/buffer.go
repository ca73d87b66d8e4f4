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

// InsertionBuffer accumulates instructions to be inserted at multiple
// positions of a single block's instruction list, and commits them in one
// pass via List.AppendBuffer. Insertions must be recorded in non-decreasing
// index order. A buffer is bound to exactly one list at a time and must be
// re-initialized before serving another one.
type InsertionBuffer struct {
    list *List
    ops  []*Instruction

    /* insertion points, index and count stored alternately:
     *   indexAndCount[i * 2]     - index into the list where count ops go
     *   indexAndCount[i * 2 + 1] - the number of ops inserted at the index */
    indexAndCount []int
}

// Init binds the buffer to a block's instruction list. The buffer must not
// be bound already.
func (self *InsertionBuffer) Init(list *List) {
    if self.Initialized() {
        panic("lir: insertion buffer is already initialized")
    }
    if list == nil {
        panic("lir: insertion buffer cannot be bound to a nil list")
    }
    self.list = list
    self.ops = self.ops[:0]
    self.indexAndCount = self.indexAndCount[:0]
}

func (self *InsertionBuffer) Initialized() bool {
    return self.list != nil
}

// Finish detaches the buffer from its list. Called automatically when the
// buffer is committed with List.AppendBuffer.
func (self *InsertionBuffer) Finish() {
    self.list = nil
}

func (self *InsertionBuffer) List() *List {
    return self.list
}

func (self *InsertionBuffer) NumInsertionPoints() int {
    return len(self.indexAndCount) >> 1
}

func (self *InsertionBuffer) IndexAt(i int) int {
    return self.indexAndCount[i << 1]
}

func (self *InsertionBuffer) CountAt(i int) int {
    return self.indexAndCount[(i << 1) + 1]
}

func (self *InsertionBuffer) NumOps() int {
    return len(self.ops)
}

func (self *InsertionBuffer) OpAt(i int) *Instruction {
    return self.ops[i]
}

// Move records a move of src into dst to be inserted before index.
func (self *InsertionBuffer) Move(index int, src Value, dst Value) {
    self.Append(index, NewMove(dst, src))
}

// Append records op for insertion before index. Indices must not decrease
// across calls, adjacent insertions at the same index coalesce into one
// insertion point.
func (self *InsertionBuffer) Append(index int, op *Instruction) {
    if !self.Initialized() {
        panic("lir: insertion buffer is not initialized")
    }
    if index < 0 {
        panic(fmt.Sprintf("lir: invalid insertion index: %d", index))
    }

    /* either start a new insertion point or extend the last one */
    if i := self.NumInsertionPoints() - 1; i < 0 || self.IndexAt(i) < index {
        self.indexAndCount = append(self.indexAndCount, index, 1)
    } else if self.IndexAt(i) != index {
        panic(fmt.Sprintf("lir: can append ops in ascending order only: %d after %d", index, self.IndexAt(i)))
    } else {
        self.indexAndCount[(i << 1) + 1]++
    }

    /* record the instruction */
    self.ops = append(self.ops, op)

    /* optional consistency check */
    if debugBuffer {
        self.verify()
    }
}

func (self *InsertionBuffer) verify() {
    sum := 0
    prev := -1

    /* indices must ascend strictly, counts must cover every op */
    for i := 0; i < self.NumInsertionPoints(); i++ {
        if self.IndexAt(i) <= prev {
            panic("lir: insertion indices must be ordered ascending")
        }
        prev = self.IndexAt(i)
        sum += self.CountAt(i)
    }

    /* every recorded op belongs to exactly one insertion point */
    if sum != len(self.ops) {
        panic(fmt.Sprintf("lir: insertion counts sum to %d, have %d ops", sum, len(self.ops)))
    }
}
