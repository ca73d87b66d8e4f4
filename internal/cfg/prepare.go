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

    `github.com/bytejit/lsra/internal/opts`
)

// Prepare runs the whole control flow preparation over one method: loop
// discovery and scan ordering, loop rotation, then a final reorder of the
// rotated graph. Every violated invariant inside the passes is a compiler
// bug and surfaces as an error for this one method, callers drop the method
// and keep compiling others.
func Prepare(cfg *CFG, options opts.Options) (order []*BasicBlock, loops []*Loop, err error) {
    defer func() {
        if v := recover(); v != nil {
            order = nil
            loops = nil
            err = fmt.Errorf("cfg: method preparation failed: %v", v)
        }
    }()

    /* order once to discover loops, rotate, then order the rotated graph */
    dt := BuildDominatorTree(cfg)
    order, loops = ComputeLinearScanOrder(cfg, &dt)

    /* rotation invalidates both, recompute */
    if options.RotateLoops {
        RotateLoops(cfg, loops)
        dt = BuildDominatorTree(cfg)
        order, loops = ComputeLinearScanOrder(cfg, &dt)
    }

    /* optional self check */
    if options.VerifyOrder {
        VerifyOrder(&dt, order, loops)
    }
    return
}
