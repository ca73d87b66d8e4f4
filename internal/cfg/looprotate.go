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

// RotateLoops rewrites every rotatable loop from pre-test to guarded
// post-test form, reducing the steady state branch count from two per
// iteration to one:
//
//     while (cond) {          if (cond) {
//         body                    do {
//     }                               body
//                                 } while (cond)
//                             }
//
// The old header keeps only its trailing branch and becomes the guard, the
// remaining header instructions move to a new in-loop header, and a new
// exit test block holding a clone of the branch carries the backward edge.
// Loop membership and exits are updated in place, the scan order must be
// recomputed afterwards.
func RotateLoops(cfg *CFG, loops []*Loop) {
    for _, lp := range loops {
        rotateLoop(cfg, lp)
    }
}

func rotateLoop(cfg *CFG, lp *Loop) {
    hdr := lp.Header
    br := hdr.Ins.Last()

    /* only a header ending with a conditional branch is rotatable */
    if br == nil || !br.IsBranch() {
        return
    }

    /* the guard keeps the branch, everything else moves to the new header
     * in original order */
    nh := cfg.CreateBlock()
    for hdr.Ins.Len() > 1 {
        nh.Ins.Append(hdr.Ins.RemoveAt(0))
    }

    /* the branch enters the loop through the new header now, a self loop
     * becomes a self loop of the new header */
    for _, sx := range append([]*BasicBlock(nil), hdr.Succ...) {
        if lp.Contains(sx) {
            cfg.RemoveEdge(hdr, sx)
            br.ReplaceTarget(sx.Id, nh.Id)
            if sx == hdr {
                cfg.AddEdge(nh, nh)
            } else {
                cfg.AddEdge(nh, sx)
            }
        }
    }

    /* guard to new header edge */
    cfg.AddEdge(hdr, nh)

    /* backward branches land on the new header */
    for _, p := range append([]*BasicBlock(nil), hdr.Pred...) {
        if lp.Contains(p) {
            cfg.RemoveEdge(p, hdr)
            cfg.AddEdge(p, nh)
            if q := p.Ins.Last(); q != nil && q.HasTargets() {
                q.ReplaceTarget(hdr.Id, nh.Id)
            }
        }
    }

    /* the guard leaves the loop, the new header takes its place */
    lp.RemoveBlock(hdr)
    lp.AddBlock(nh)
    lp.Header = nh

    /* loop metadata follows the header */
    nh.LoopIndex = hdr.LoopIndex
    nh.LoopDepth = hdr.LoopDepth
    nh.Flags |= hdr.Flags & (FlagLoopHeader | FlagBackwardBranchTarget)
    hdr.ClearFlag(FlagLoopHeader | FlagBackwardBranchTarget)
    hdr.LoopIndex = -1
    hdr.LoopDepth--

    /* without a single follow block there is nothing to funnel the exit
     * edges through, the split alone suffices */
    if lp.Follow == nil {
        return
    }

    /* the exit test holds the only copied instruction, a clone of the
     * header branch with its backward edge to the new header */
    xt := cfg.CreateBlock()
    nb := br.Clone()
    nb.ReplaceTarget(hdr.Id, nh.Id)
    xt.Ins.Append(nb)

    /* funnel every exit that branches to the follow block through the exit
     * test instead, the guard already left the membership and keeps its own
     * edge to the follow block */
    for _, bb := range append([]*BasicBlock(nil), lp.Exits...) {
        if !lp.Contains(bb) {
            lp.RemoveExit(bb)
            continue
        }
        if q := bb.Ins.Last(); q != nil && q.ReplaceTarget(lp.Follow.Id, xt.Id) {
            cfg.RemoveEdge(bb, lp.Follow)
            cfg.AddEdge(bb, xt)
            lp.RemoveExit(bb)
        }
    }

    /* the exit test joins the loop */
    lp.AddExit(xt)
    lp.AddBlock(xt)
    xt.LoopIndex = nh.LoopIndex
    xt.LoopDepth = nh.LoopDepth
    cfg.AddEdge(xt, nh)
    cfg.AddEdge(xt, lp.Follow)

    /* in-loop predecessors of the new header run the exit test first, the
     * back edge of the rotated loop originates there */
    for _, p := range append([]*BasicBlock(nil), nh.Pred...) {
        if !lp.Contains(p) || lp.IsExit(p) {
            continue
        }
        if q := p.Ins.Last(); q != nil && q.HasTargets() {
            q.ReplaceTarget(nh.Id, xt.Id)
        }
        cfg.RemoveEdge(p, nh)
        cfg.AddEdge(p, xt)
    }
}
