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

package lsra

import (
    `github.com/bytejit/lsra/internal/opts`
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithLoopRotation controls whether while loops are rewritten into guarded
// do-while form before ordering.
//
// Rotation removes one branch per loop iteration at the cost of one extra
// block per rotated loop. It can also be disabled process-wide with the
// LSRA_NO_ROTATION environment variable.
//
// The default value of this option is "true".
func WithLoopRotation(enabled bool) Option {
    return func(o *opts.Options) { o.RotateLoops = enabled }
}

// WithOrderVerification re-derives the ordering invariants after the passes
// complete and fails the method when any is violated.
//
// This is a debugging aid for the compiler itself, normal operation relies
// on the invariants holding by construction. It can also be enabled
// process-wide with the LSRA_VERIFY_ORDER environment variable.
//
// The default value of this option is "false".
func WithOrderVerification(enabled bool) Option {
    return func(o *opts.Options) { o.VerifyOrder = enabled }
}
