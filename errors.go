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
    `fmt`
)

// GraphError occures when a control flow graph violates an internal
// consistency invariant during preparation. It always indicates a bug in an
// earlier compiler phase, never bad user input.
type GraphError struct {
    Reason string
}

func (self GraphError) Error() string {
    return fmt.Sprintf("GraphError: %s", self.Reason)
}
