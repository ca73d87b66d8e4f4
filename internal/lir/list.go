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

// List is the ordered instruction sequence of one basic block.
type List struct {
    ops []*Instruction
}

func (self *List) Len() int {
    return len(self.ops)
}

func (self *List) At(i int) *Instruction {
    return self.ops[i]
}

// Last returns the trailing instruction, nil for an empty list.
func (self *List) Last() *Instruction {
    if n := len(self.ops); n == 0 {
        return nil
    } else {
        return self.ops[n - 1]
    }
}

func (self *List) Append(p *Instruction) {
    self.ops = append(self.ops, p)
}

// RemoveAt removes and returns the instruction at index i, shifting the
// remainder down.
func (self *List) RemoveAt(i int) *Instruction {
    p := self.ops[i]
    self.ops = append(self.ops[:i], self.ops[i + 1:]...)
    return p
}

// AppendBuffer splices every pending insertion of buf into this list in one
// ascending pass, then detaches the buffer. Original instructions shift by
// the cumulative count of insertions before them, relative order of original
// and inserted instructions is preserved.
func (self *List) AppendBuffer(buf *InsertionBuffer) {
    if buf.list != self {
        panic("lir: insertion buffer is bound to a different list")
    }

    src := 0
    ops := 0
    ret := make([]*Instruction, 0, len(self.ops) + len(buf.ops))

    /* splice every insertion point */
    for i := 0; i < buf.NumInsertionPoints(); i++ {
        idx := buf.IndexAt(i)
        cnt := buf.CountAt(i)

        /* insertion index must stay within the original list */
        if idx > len(self.ops) {
            panic(fmt.Sprintf("lir: insertion index out of range: %d", idx))
        }

        /* copy up to the insertion point, then the inserted run */
        ret = append(ret, self.ops[src:idx]...)
        ret = append(ret, buf.ops[ops:ops + cnt]...)
        src = idx
        ops += cnt
    }

    /* copy the tail, and detach the buffer */
    self.ops = append(ret, self.ops[src:]...)
    buf.Finish()
}
