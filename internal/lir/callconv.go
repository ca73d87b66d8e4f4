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

package lir

import (
    `fmt`
    `strings`
)

// CallingConvention describes where the arguments of a call are placed,
// ordered by argument index. Every location is either a register or a stack
// slot.
type CallingConvention struct {
    StackSize int
    Locations []Value
}

func NewCallingConvention(locations []Value, stackSize int) *CallingConvention {
    for i, v := range locations {
        if !IsRegister(v) && !IsStackSlot(v) {
            panic(fmt.Sprintf("lir: argument %d must be a register or stack slot, not %s", i, v))
        }
    }
    return &CallingConvention {
        StackSize : stackSize,
        Locations : locations,
    }
}

func (self *CallingConvention) String() string {
    nb := len(self.Locations)
    ss := make([]string, 0, nb)

    /* add every location */
    for _, v := range self.Locations {
        ss = append(ss, v.String())
    }

    /* join them together */
    return fmt.Sprintf(
        "CallingConvention {%s}",
        strings.Join(ss, ", "),
    )
}
