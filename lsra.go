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

// Package lsra prepares a method's control flow graph for linear scan
// register allocation: it discovers natural loops, rotates them into guarded
// post-test form and computes the block order the allocator processes, along
// with the LIR operand bookkeeping the allocator resolves.
package lsra

import (
    `github.com/bytejit/lsra/internal/cfg`
    `github.com/bytejit/lsra/internal/opts`
)

type (
    CFG           = cfg.CFG
    BasicBlock    = cfg.BasicBlock
    Loop          = cfg.Loop
    DominatorTree = cfg.DominatorTree
)

// NewCFG creates an empty graph with a fresh entry block.
func NewCFG() *CFG {
    return cfg.NewCFG()
}

// BuildDominatorTree computes the dominator tree of g from its entry block.
func BuildDominatorTree(g *CFG) DominatorTree {
    return cfg.BuildDominatorTree(g)
}

// PrepareMethod runs loop discovery, loop rotation and scan ordering over
// one method's graph. The returned order is what the register allocator
// walks, every block carries its position in LinearScanNumber. A failure
// means a bug in an earlier compiler phase, the caller drops this method
// and keeps compiling others.
func PrepareMethod(g *CFG, options ...Option) ([]*BasicBlock, []*Loop, error) {
    o := opts.GetDefaultOptions()

    /* apply all the options */
    for _, fn := range options {
        fn(&o)
    }

    /* run the pipeline, wrap internal violations */
    order, loops, err := cfg.Prepare(g, o)
    if err != nil {
        return nil, nil, GraphError { Reason: err.Error() }
    }
    return order, loops, nil
}
