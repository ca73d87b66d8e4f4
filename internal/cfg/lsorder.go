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
    `sort`

    `github.com/oleiade/lane`
)

/* weight bits, most significant first:
 *   [30:16] loop depth, deeper blocks are emitted first to keep loops contiguous
 *   [15]    block is not a loop header
 *   [14]    block is not a loop end, loop ends are emitted as late as possible
 *   [13]    block splits a critical edge, preferred early since likely empty
 *   [12]    neither the block nor its sole successor ends with a return
 *   [0]     always set, a weight is never zero */
const (
    _W_not_header    = 1 << 15
    _W_not_loop_end  = 1 << 14
    _W_edge_split    = 1 << 13
    _W_no_return     = 1 << 12
    _W_always        = 1 << 0
    _W_max_depth     = 1 << 15
)

type _BackEdge struct {
    from *BasicBlock
    to   *BasicBlock
}

type _DfsEvent struct {
    bb    *BasicBlock
    leave bool
}

type _OrderComputer struct {
    cfg      *CFG
    dt       *DominatorTree
    visited  _BitVec
    active   _BitVec
    forward  []int
    weights  []int
    loopMap  *_BitMap2D
    loopEnds []_BackEdge
    headers  []*BasicBlock
    cleared  _BitVec
    numLoops int
    order    []*BasicBlock
    worklist []*BasicBlock
}

func newOrderComputer(cfg *CFG, dt *DominatorTree) *_OrderComputer {
    nb := cfg.MaxBlock()
    return &_OrderComputer {
        cfg     : cfg,
        dt      : dt,
        visited : newBitVec(nb),
        active  : newBitVec(nb),
        forward : make([]int, nb),
        weights : make([]int, nb),
    }
}

// reset clears every ordering artifact of a previous run so that the
// computation is idempotent on an unmodified graph. Critical edge split
// marks are made by the lowering phase and survive.
func (self *_OrderComputer) reset() {
    for _, bb := range self.cfg.Blocks {
        bb.LoopIndex = -1
        bb.LoopDepth = 0
        bb.LinearScanNumber = -1
        bb.ClearFlag(FlagLoopHeader | FlagLoopEnd | FlagBackwardBranchTarget)
    }
}

/* Pass 1: one DFS from the entry block, with an explicit event stack since
 * method graphs can be arbitrarily deep. An edge to an active block is a
 * backward edge and identifies a loop, every other edge counts towards the
 * target's forward branch counter. Headers receive their loop index at the
 * post-order leave event, so inner loops get smaller indices than the loops
 * they nest in. */
func (self *_OrderComputer) countEdges() {
    st := lane.NewStack()
    st.Push(_DfsEvent { bb: self.cfg.Root })

    for !st.Empty() {
        ev := st.Pop().(_DfsEvent)
        bb := ev.bb

        /* post-order: deactivate, and number the header */
        if ev.leave {
            self.active.clear(bb.Id)

            /* assign the loop index */
            if bb.HasFlag(FlagLoopHeader) {
                if bb.LoopIndex != -1 {
                    panic(fmt.Sprintf("cfg: loop index of %s assigned twice", bb))
                }
                bb.LoopIndex = self.numLoops
                self.numLoops++
            }
            continue
        }

        /* visit each block once */
        if self.visited.test(bb.Id) {
            continue
        }

        /* schedule the leave event */
        self.visited.set(bb.Id)
        self.active.set(bb.Id)
        st.Push(_DfsEvent { bb: bb, leave: true })

        /* classify every outgoing edge */
        for _, sx := range bb.Succ {
            if self.active.test(sx.Id) {
                bb.SetFlag(FlagLoopEnd)
                sx.SetFlag(FlagLoopHeader | FlagBackwardBranchTarget)
                self.loopEnds = append(self.loopEnds, _BackEdge { from: bb, to: sx })
            } else {
                self.forward[sx.Id]++
                if !self.visited.test(sx.Id) {
                    st.Push(_DfsEvent { bb: sx })
                }
            }
        }
    }
}

/* Pass 2: flood the loop membership bitmap backwards from every recorded
 * loop end, stopping at the loop header. Every block on a path from the
 * header to a backward branch belongs to the loop. */
func (self *_OrderComputer) markLoops() {
    self.cleared = newBitVec(self.numLoops)
    self.headers = make([]*BasicBlock, self.numLoops)
    self.loopMap = newBitMap2D(self.numLoops, self.cfg.MaxBlock())

    /* process loop ends in reverse discovery order */
    for i := len(self.loopEnds) - 1; i >= 0; i-- {
        end := self.loopEnds[i].from
        hdr := self.loopEnds[i].to
        idx := hdr.LoopIndex

        /* record the header of the loop */
        self.headers[idx] = hdr
        self.loopMap.set(idx, hdr.Id)

        /* flood from the loop end, predecessor-wise */
        st := stacknew(end)
        self.loopMap.set(idx, end.Id)

        /* the header bounds the flood, blocks past it are outside */
        for !st.Empty() {
            bb := st.Pop().(*BasicBlock)
            if bb == hdr {
                continue
            }
            for _, p := range bb.Pred {
                if !self.loopMap.test(idx, p.Id) {
                    self.loopMap.set(idx, p.Id)
                    st.Push(p)
                }
            }
        }
    }
}

/* Pass 3: a loop whose membership includes the entry block has a second way
 * in and is not natural, drop it entirely. */
func (self *_OrderComputer) clearNonNaturalLoops() {
    for i := self.numLoops - 1; i >= 0; i-- {
        if self.loopMap.test(i, self.cfg.Root.Id) {
            self.cleared.set(i)
            self.loopMap.clearRow(i)
        }
    }
}

/* Pass 4: a second walk assigns every reachable block the number of
 * surviving loops containing it, and its innermost loop index. */
func (self *_OrderComputer) assignLoopDepth() {
    NewBasicBlockIter(self.cfg).ForEach(func(bb *BasicBlock) {
        depth := 0
        index := -1

        /* smallest surviving index is the innermost loop */
        for i := 0; i < self.numLoops; i++ {
            if !self.cleared.test(i) && self.loopMap.test(i, bb.Id) {
                depth++
                if index == -1 {
                    index = i
                }
            }
        }

        /* commit */
        bb.LoopDepth = depth
        bb.LoopIndex = index
    })
}

func (self *_OrderComputer) computeWeight(bb *BasicBlock) int {
    if bb.LoopDepth >= _W_max_depth {
        panic(fmt.Sprintf("cfg: loop nesting of %s exceeds the weight encoding: %d", bb, bb.LoopDepth))
    }

    /* deeper blocks first, loops stay contiguous */
    w := bb.LoopDepth << 16

    /* sole successor, when present */
    var sx *BasicBlock
    if len(bb.Succ) == 1 {
        sx = bb.Succ[0]
    }

    /* headers and loop ends are emitted as late as their loop permits,
     * return-adjacent blocks are deferred to the end of the method */
    if !bb.HasFlag(FlagLoopHeader)         { w |= _W_not_header }
    if !bb.HasFlag(FlagLoopEnd)            { w |= _W_not_loop_end }
    if bb.HasFlag(FlagCriticalEdgeSplit)   { w |= _W_edge_split }
    if !endsWithReturn(bb) && (sx == nil || !endsWithReturn(sx)) { w |= _W_no_return }
    return w | _W_always
}

/* insert bb keeping the worklist sorted ascending by weight, blocks of
 * equal weight keep their insertion order relative to the tail */
func (self *_OrderComputer) sortIntoWorkList(bb *BasicBlock) {
    w := self.computeWeight(bb)
    self.weights[bb.Id] = w
    self.worklist = append(self.worklist, bb)

    /* shift greater-or-equal entries towards the tail */
    i := len(self.worklist) - 1
    for i > 0 && w <= self.weights[self.worklist[i - 1].Id] {
        self.worklist[i] = self.worklist[i - 1]
        i--
    }
    self.worklist[i] = bb
}

func (self *_OrderComputer) appendBlock(bb *BasicBlock) {
    bb.LinearScanNumber = len(self.order)
    self.order = append(self.order, bb)
}

/* Pass 5: emit blocks highest weight first, a block becomes eligible once
 * every incoming forward edge was emitted. */
func (self *_OrderComputer) computeOrder() {
    root := self.cfg.Root
    self.order = make([]*BasicBlock, 0, self.cfg.MaxBlock())

    /* the entry block must not be the target of any forward edge */
    if self.forward[root.Id] != 0 {
        panic("cfg: entry block must be ready for processing")
    }

    /* seed with the entry block */
    self.sortIntoWorkList(root)

    /* drain the worklist */
    for len(self.worklist) > 0 {
        i := len(self.worklist) - 1
        bb := self.worklist[i]
        self.worklist = self.worklist[:i]
        self.appendBlock(bb)

        /* release the successors */
        for _, sx := range bb.Succ {
            self.forward[sx.Id]--
            if self.forward[sx.Id] == 0 {
                self.sortIntoWorkList(sx)
            }
        }
    }
}

/* materialize the surviving loops, with exit blocks sorted by their
 * position in the final order */
func (self *_OrderComputer) buildLoops() []*Loop {
    ret := make([]*Loop, 0, self.numLoops)

    for i := 0; i < self.numLoops; i++ {
        if self.cleared.test(i) {
            continue
        }

        /* copy the membership row */
        lp := newLoop(i, self.headers[i], self.cfg.MaxBlock())
        for _, bb := range self.cfg.Blocks {
            if self.loopMap.test(i, bb.Id) {
                lp.AddBlock(bb)
            }
        }

        /* exit blocks are members with an edge leaving the loop */
        for _, bb := range lp.Members(self.cfg) {
            for _, sx := range bb.Succ {
                if !lp.Contains(sx) {
                    lp.AddExit(bb)
                    break
                }
            }
        }

        /* stable position order for rotation */
        sort.Slice(lp.Exits, func(a int, b int) bool {
            return lp.Exits[a].LinearScanNumber < lp.Exits[b].LinearScanNumber
        })

        /* the follow block is the header's out-of-loop successor, or the
         * unique out-of-loop target when the header has none */
        lp.Follow = self.findFollow(lp)
        ret = append(ret, lp)
    }
    return ret
}

func (self *_OrderComputer) findFollow(lp *Loop) *BasicBlock {
    var follow *BasicBlock

    /* prefer the header's own exit edge */
    for _, sx := range lp.Header.Succ {
        if !lp.Contains(sx) {
            return sx
        }
    }

    /* otherwise a unique out-of-loop target shared by every exit */
    for _, bb := range lp.Exits {
        for _, sx := range bb.Succ {
            if !lp.Contains(sx) {
                if follow == nil || follow == sx {
                    follow = sx
                } else {
                    return nil
                }
            }
        }
    }
    return follow
}

// VerifyOrder checks the ordering invariants over a computed order, it is a
// debug aid and panics on the first violation.
func VerifyOrder(dt *DominatorTree, order []*BasicBlock, loops []*Loop) {
    for i, bb := range order {
        if bb.LinearScanNumber != i {
            panic(fmt.Sprintf("cfg: %s has scan number %d at position %d", bb, bb.LinearScanNumber, i))
        }

        /* successors come later, except across backward branches */
        if !bb.HasFlag(FlagLoopEnd) {
            for _, sx := range bb.Succ {
                if sx.LinearScanNumber <= bb.LinearScanNumber {
                    panic(fmt.Sprintf("cfg: %s is ordered after its successor %s", bb, sx))
                }
            }
        }

        /* the immediate dominator precedes every predecessor */
        if id := dt.Idom(bb); id != nil {
            for _, p := range bb.Pred {
                if id.LinearScanNumber > p.LinearScanNumber {
                    panic(fmt.Sprintf("cfg: dominator %s of %s is ordered after predecessor %s", id, bb, p))
                }
            }
        }
    }

    /* loop membership must form one contiguous run */
    for _, lp := range loops {
        lo := -1
        hi := -1
        nb := 0

        for _, bb := range order {
            if lp.Contains(bb) {
                nb++
                hi = bb.LinearScanNumber
                if lo == -1 {
                    lo = bb.LinearScanNumber
                }
            }
        }

        /* every member is ordered, and no stranger interleaves */
        if nb != 0 && hi - lo + 1 != nb {
            panic(fmt.Sprintf("cfg: members of %s are not contiguous in the scan order", lp))
        }
    }
}

// ComputeLinearScanOrder numbers every reachable block of cfg with its
// position in the order the linear scan allocator processes blocks in, and
// returns the order along with every discovered natural loop. Loop depth,
// loop index and the loop related flags are assigned as a side effect.
func ComputeLinearScanOrder(cfg *CFG, dt *DominatorTree) ([]*BasicBlock, []*Loop) {
    oc := newOrderComputer(cfg, dt)
    oc.reset()
    oc.countEdges()
    oc.markLoops()
    oc.clearNonNaturalLoops()
    oc.assignLoopDepth()
    oc.computeOrder()
    ret := oc.buildLoops()

    /* optional consistency check */
    if debugOrder {
        VerifyOrder(dt, oc.order, ret)
        dumpOrder(oc.order, ret)
    }
    return oc.order, ret
}
