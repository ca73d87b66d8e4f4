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

package opts

import (
    `os`
)

var (
    // NoRotation disables loop rotation for every compiled method.
    NoRotation = os.Getenv("LSRA_NO_ROTATION") != ""

    // ForceVerify re-checks the ordering invariants after every pass, it is
    // expensive and intended for debugging the compiler itself.
    ForceVerify = os.Getenv("LSRA_VERIFY_ORDER") != ""
)
