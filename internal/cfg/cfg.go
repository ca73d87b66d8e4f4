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

// CFG owns every basic block of one method. Blocks are arena-allocated and
// identified by a small dense id, edges never own their targets.
type CFG struct {
    Root   *BasicBlock
    Blocks []*BasicBlock
}

func NewCFG() *CFG {
    p := new(CFG)
    p.Root = p.CreateBlock()
    return p
}

// CreateBlock adds a fresh block to the arena and assigns the next id.
func (self *CFG) CreateBlock() *BasicBlock {
    bb := &BasicBlock {
        Id               : len(self.Blocks),
        LoopIndex        : -1,
        LinearScanNumber : -1,
    }
    self.Blocks = append(self.Blocks, bb)
    return bb
}

// MaxBlock returns an exclusive upper bound on block ids.
func (self *CFG) MaxBlock() int {
    return len(self.Blocks)
}

func (self *CFG) NumBlocks() int {
    return len(self.Blocks)
}

func (self *CFG) BlockById(id int) *BasicBlock {
    if id < 0 || id >= len(self.Blocks) {
        panic(fmt.Sprintf("cfg: invalid block id: %d", id))
    }
    return self.Blocks[id]
}

// AddEdge connects from to to, updating both edge lists.
func (self *CFG) AddEdge(from *BasicBlock, to *BasicBlock) {
    from.Succ = append(from.Succ, to)
    to.Pred = append(to.Pred, from)
}

// RemoveEdge disconnects from from to, updating both edge lists.
func (self *CFG) RemoveEdge(from *BasicBlock, to *BasicBlock) {
    from.removeSucc(to)
    to.removePred(from)
}
