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
)

// Loop is one natural loop discovered by the scan order computer. Membership
// is tracked as a bitmap over block ids, the header is the unique entry
// block within the loop.
type Loop struct {
    Index  int
    Header *BasicBlock
    Exits  []*BasicBlock
    Follow *BasicBlock
    blocks _BitVec
}

func newLoop(index int, header *BasicBlock, nb int) *Loop {
    return &Loop {
        Index  : index,
        Header : header,
        blocks : newBitVec(nb),
    }
}

func (self *Loop) Contains(bb *BasicBlock) bool {
    return self.blocks.test(bb.Id)
}

// AddBlock records bb as a loop member. The bitmap grows on demand so that
// blocks created after loop discovery can be added.
func (self *Loop) AddBlock(bb *BasicBlock) {
    self.blocks.grow(bb.Id + 1)
    self.blocks.set(bb.Id)
}

func (self *Loop) RemoveBlock(bb *BasicBlock) {
    if self.blocks.test(bb.Id) {
        self.blocks.clear(bb.Id)
    }
}

func (self *Loop) IsExit(bb *BasicBlock) bool {
    for _, p := range self.Exits {
        if p == bb {
            return true
        }
    }
    return false
}

func (self *Loop) AddExit(bb *BasicBlock) {
    if !self.IsExit(bb) {
        self.Exits = append(self.Exits, bb)
    }
}

func (self *Loop) RemoveExit(bb *BasicBlock) {
    nx := self.Exits
    self.Exits = self.Exits[:0]

    /* filter out the block */
    for _, p := range nx {
        if p != bb {
            self.Exits = append(self.Exits, p)
        }
    }
}

// Members collects every member block from the CFG arena, in block id order.
func (self *Loop) Members(cfg *CFG) []*BasicBlock {
    var ret []*BasicBlock
    for _, bb := range cfg.Blocks {
        if self.blocks.test(bb.Id) {
            ret = append(ret, bb)
        }
    }
    return ret
}

func (self *Loop) String() string {
    return fmt.Sprintf("loop_%d(header = %s)", self.Index, self.Header)
}
