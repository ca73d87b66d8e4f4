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
    `os`

    `github.com/davecgh/go-spew/spew`
)

// set LSRA_DEBUG_ORDER to verify and dump every computed scan order
var debugOrder = os.Getenv("LSRA_DEBUG_ORDER") != ""

func dumpOrder(order []*BasicBlock, loops []*Loop) {
    fmt.Fprintf(os.Stderr, "scan order (%d blocks, %d loops):\n", len(order), len(loops))

    /* one line per block */
    for _, bb := range order {
        fmt.Fprintf(
            os.Stderr,
            "  %3d: %s depth=%d index=%d flags=%04b succ=%v\n",
            bb.LinearScanNumber,
            bb,
            bb.LoopDepth,
            bb.LoopIndex,
            bb.Flags,
            bb.Succ,
        )
    }

    /* full loop structure */
    for _, lp := range loops {
        spew.Fdump(os.Stderr, lp)
    }
}
