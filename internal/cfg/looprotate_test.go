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
    `testing`

    `github.com/bytejit/lsra/internal/lir`
    `github.com/bytejit/lsra/internal/opts`
    `github.com/stretchr/testify/require`
)

/* a plain while loop:
 *
 *   entry:  jump header
 *   header: v0 = move 0 ; branch lt v0, 10 -> body, follow
 *   body:   v1 = add v0 ; jump header
 *   follow: return
 */
func whileLoop() (*CFG, []*BasicBlock) {
    g := NewCFG()
    bb := mkblocks(g, 4)
    g.AddEdge(bb[0], bb[1])
    g.AddEdge(bb[1], bb[2])
    g.AddEdge(bb[1], bb[3])
    g.AddEdge(bb[2], bb[1])

    bb[0].Ins.Append(lir.NewJump(bb[1].Id))
    bb[1].Ins.Append(lir.NewMove(lir.Var(lir.K_int, 0), lir.ConstInt(0)))
    bb[1].Ins.Append(lir.NewBranch(lir.CondLT, lir.Var(lir.K_int, 0), lir.ConstInt(10), bb[2].Id, bb[3].Id))
    bb[2].Ins.Append(lir.New(lir.OpAdd, lir.Var(lir.K_int, 1), false, 0, 0, lir.Var(lir.K_int, 0)))
    bb[2].Ins.Append(lir.NewJump(bb[1].Id))
    bb[3].Ins.Append(lir.NewReturn(lir.Illegal))
    return g, bb
}

func countIns(g *CFG) int {
    n := 0
    for _, bb := range g.Blocks {
        n += bb.Ins.Len()
    }
    return n
}

func TestRotate_WhileLoop(t *testing.T) {
    g, bb := whileLoop()
    hdr, body, follow := bb[1], bb[2], bb[3]
    before := countIns(g)

    _, loops, _ := scanOrder(t, g)
    require.Len(t, loops, 1)
    RotateLoops(g, loops)
    require.Equal(t, 6, g.NumBlocks())

    nh := g.Blocks[4]
    xt := g.Blocks[5]
    lp := loops[0]

    /* the guard keeps only the branch, testing the original condition */
    require.Equal(t, 1, hdr.Ins.Len())
    gb := hdr.Ins.Last()
    require.True(t, gb.IsBranch())
    require.Equal(t, lir.CondLT, gb.Cond)
    require.Equal(t, nh.Id, gb.TrueTarget())
    require.Equal(t, follow.Id, gb.FalseTarget())

    /* the moved instructions head the rotated loop */
    require.Equal(t, 1, nh.Ins.Len())
    require.Equal(t, lir.OpMove, nh.Ins.Last().Op)
    require.Equal(t, []*BasicBlock { body }, nh.Succ)

    /* the backward edge runs through the exit test */
    require.Equal(t, 1, xt.Ins.Len())
    xb := xt.Ins.Last()
    require.True(t, xb.IsBranch())
    require.Equal(t, nh.Id, xb.TrueTarget())
    require.Equal(t, follow.Id, xb.FalseTarget())
    require.Equal(t, []*BasicBlock { nh, follow }, xt.Succ)
    require.Equal(t, []int { xt.Id }, body.Ins.Last().Targets)
    require.Equal(t, []*BasicBlock { xt }, body.Succ)

    /* membership follows the rewrite */
    require.Same(t, nh, lp.Header)
    require.True(t, lp.Contains(nh))
    require.True(t, lp.Contains(body))
    require.True(t, lp.Contains(xt))
    require.False(t, lp.Contains(hdr))
    require.Equal(t, []*BasicBlock { xt }, lp.Exits)
    require.Equal(t, -1, hdr.LoopIndex)
    require.Equal(t, 0, hdr.LoopDepth)
    require.Equal(t, 1, nh.LoopDepth)
    require.Equal(t, 1, xt.LoopDepth)

    /* only the branch was duplicated */
    require.Equal(t, before + 1, countIns(g))
}

func TestRotate_ReorderAfterRotation(t *testing.T) {
    g, _ := whileLoop()

    _, loops, _ := scanOrder(t, g)
    RotateLoops(g, loops)

    /* the rotated loop is natural and survives re-analysis */
    order, loops2, _ := scanOrder(t, g)
    require.Len(t, loops2, 1)
    require.Len(t, order, 6)
    require.Same(t, g.Blocks[4], loops2[0].Header)
    require.True(t, g.Blocks[5].HasFlag(FlagLoopEnd))
    require.True(t, g.Blocks[4].HasFlag(FlagLoopHeader))
}

/* a while loop with a break, the body is a second exit branching straight
 * to the follow block:
 *
 *   entry:  jump header
 *   header: v0 = move 0 ; branch lt v0, 10 -> body, follow
 *   body:   branch eq v0, 0 -> follow, latch
 *   latch:  jump header
 *   follow: return
 */
func TestRotate_BreakExitFunneled(t *testing.T) {
    g := NewCFG()
    bb := mkblocks(g, 5)
    hdr, body, latch, follow := bb[1], bb[2], bb[3], bb[4]
    g.AddEdge(bb[0], hdr)
    g.AddEdge(hdr, body)
    g.AddEdge(hdr, follow)
    g.AddEdge(body, follow)
    g.AddEdge(body, latch)
    g.AddEdge(latch, hdr)

    bb[0].Ins.Append(lir.NewJump(hdr.Id))
    hdr.Ins.Append(lir.NewMove(lir.Var(lir.K_int, 0), lir.ConstInt(0)))
    hdr.Ins.Append(lir.NewBranch(lir.CondLT, lir.Var(lir.K_int, 0), lir.ConstInt(10), body.Id, follow.Id))
    body.Ins.Append(lir.NewBranch(lir.CondEQ, lir.Var(lir.K_int, 0), lir.ConstInt(0), follow.Id, latch.Id))
    latch.Ins.Append(lir.NewJump(hdr.Id))
    follow.Ins.Append(lir.NewReturn(lir.Illegal))

    _, loops, _ := scanOrder(t, g)
    require.Len(t, loops, 1)
    lp := loops[0]
    require.Equal(t, []*BasicBlock { hdr, body }, lp.Exits)

    RotateLoops(g, loops)
    require.Equal(t, 7, g.NumBlocks())
    nh := g.Blocks[5]
    xt := g.Blocks[6]

    /* the break branches to the exit test instead of the follow block */
    require.Equal(t, []int { xt.Id, latch.Id }, body.Ins.Last().Targets)
    require.Equal(t, []*BasicBlock { latch, xt }, body.Succ)
    require.NotContains(t, follow.Pred, body)

    /* the exit test funnels both ways out and is the only remaining exit */
    require.Equal(t, []*BasicBlock { xt }, lp.Exits)
    require.Equal(t, []*BasicBlock { nh, follow }, xt.Succ)
    require.Equal(t, []int { xt.Id }, latch.Ins.Last().Targets)
    require.Equal(t, []*BasicBlock { xt }, latch.Succ)

    /* the rotated graph survives re-analysis */
    order, loops2, _ := scanOrder(t, g)
    require.Len(t, loops2, 1)
    require.Len(t, order, 7)
    require.Same(t, nh, loops2[0].Header)
}

func TestRotate_PlainHeaderUntouched(t *testing.T) {
    g := NewCFG()
    bb := mkblocks(g, 3)
    g.AddEdge(bb[0], bb[1])
    g.AddEdge(bb[1], bb[2])
    g.AddEdge(bb[2], bb[1])
    bb[1].Ins.Append(lir.NewJump(bb[2].Id))
    bb[2].Ins.Append(lir.NewJump(bb[1].Id))

    _, loops, _ := scanOrder(t, g)
    require.Len(t, loops, 1)
    RotateLoops(g, loops)
    require.Equal(t, 3, g.NumBlocks())
    require.Same(t, bb[1], loops[0].Header)
}

func TestRotate_Prepare(t *testing.T) {
    g, _ := whileLoop()
    order, loops, err := Prepare(g, opts.Options { RotateLoops: true, VerifyOrder: true })
    require.NoError(t, err)
    require.Len(t, loops, 1)
    require.Len(t, order, 6)
}

func TestRotate_PrepareWithoutRotation(t *testing.T) {
    g, bb := whileLoop()
    order, loops, err := Prepare(g, opts.Options { VerifyOrder: true })
    require.NoError(t, err)
    require.Len(t, loops, 1)
    require.Len(t, order, 4)
    require.Same(t, bb[1], loops[0].Header)
}

func TestRotate_PrepareFailure(t *testing.T) {
    g := NewCFG()
    x := NewCFG()

    /* an edge into a block of another graph is a compiler bug, the failure
     * is reported for this one method instead of crashing the process */
    g.AddEdge(g.Root, x.CreateBlock())
    _, _, err := Prepare(g, opts.GetDefaultOptions())
    require.Error(t, err)
}
