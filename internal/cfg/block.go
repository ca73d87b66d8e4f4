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

package cfg

import (
    `fmt`

    `github.com/bytejit/lsra/internal/lir`
)

type BlockFlag uint8

const (
    // FlagLoopHeader marks the target of a backward branch that heads a
    // discovered loop.
    FlagLoopHeader BlockFlag = 1 << iota

    // FlagLoopEnd marks a block ending with a backward branch.
    FlagLoopEnd

    // FlagBackwardBranchTarget marks any backward branch target, header of
    // a natural loop or not.
    FlagBackwardBranchTarget

    // FlagCriticalEdgeSplit marks blocks inserted to split critical edges,
    // they are preferred early in the scan order since likely empty.
    FlagCriticalEdgeSplit
)

// BasicBlock is a single-entry run of LIR instructions. Blocks are owned by
// their CFG arena and refer to each other through non-owning edge lists.
type BasicBlock struct {
    Id    int
    Ins   lir.List
    Pred  []*BasicBlock
    Succ  []*BasicBlock
    Flags BlockFlag

    /* loop metadata, assigned by the scan order computer */
    LoopIndex        int
    LoopDepth        int
    LinearScanNumber int
}

func (self *BasicBlock) HasFlag(f BlockFlag) bool {
    return self.Flags & f != 0
}

func (self *BasicBlock) SetFlag(f BlockFlag) {
    self.Flags |= f
}

func (self *BasicBlock) ClearFlag(f BlockFlag) {
    self.Flags &^= f
}

func (self *BasicBlock) String() string {
    return fmt.Sprintf("bb_%d", self.Id)
}

func (self *BasicBlock) removeSucc(bb *BasicBlock) {
    nx := self.Succ
    self.Succ = self.Succ[:0]

    /* filter out the block */
    for _, p := range nx {
        if p != bb {
            self.Succ = append(self.Succ, p)
        }
    }
}

func (self *BasicBlock) removePred(bb *BasicBlock) {
    nx := self.Pred
    self.Pred = self.Pred[:0]

    /* filter out the block */
    for _, p := range nx {
        if p != bb {
            self.Pred = append(self.Pred, p)
        }
    }
}

func endsWithReturn(bb *BasicBlock) bool {
    p := bb.Ins.Last()
    return p != nil && p.IsReturn()
}
