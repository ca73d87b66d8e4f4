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
)

// StackSlot is a spill slot or a stack-based argument in a method's frame.
// Slots in the caller's frame are encoded with a negative raw index, so the
// sign of the raw index distinguishes the two frames.
type StackSlot struct {
    kind  Kind
    index int
}

const (
    _SlotCacheSize = 64
)

var (
    slotCache       [int(K_object) + 1][_SlotCacheSize]*StackSlot
    callerSlotCache [int(K_object) + 1][_SlotCacheSize]*StackSlot
)

func init() {
    for k := range slotCache {
        for i := 0; i < _SlotCacheSize; i++ {
            slotCache[k][i] = &StackSlot { kind: Kind(k), index: i }
            callerSlotCache[k][i] = &StackSlot { kind: Kind(k), index: -(i + 1) }
        }
    }
}

// SlotAt returns the slot at index in the current frame. Small indices share
// cached instances, larger indices allocate a fresh slot.
func SlotAt(kind Kind, index int) *StackSlot {
    if index < 0 {
        panic(fmt.Sprintf("lir: invalid stack slot index: %d", index))
    }
    if index < _SlotCacheSize {
        return slotCache[kind][index]
    } else {
        return &StackSlot { kind: kind, index: index }
    }
}

// CallerSlotAt returns the slot at index in the caller's frame.
func CallerSlotAt(kind Kind, index int) *StackSlot {
    if index < 0 {
        panic(fmt.Sprintf("lir: invalid stack slot index: %d", index))
    }
    if index < _SlotCacheSize {
        return callerSlotCache[kind][index]
    } else {
        return &StackSlot { kind: kind, index: -(index + 1) }
    }
}

// Index returns the frame-relative slot index, normalized to be non-negative
// regardless of which frame the slot lives in.
func (self *StackSlot) Index() int {
    if self.index < 0 {
        return -(self.index + 1)
    } else {
        return self.index
    }
}

func (self *StackSlot) RawIndex() int {
    return self.index
}

func (self *StackSlot) InCallerFrame() bool {
    return self.index < 0
}

func (self *StackSlot) Kind() Kind {
    return self.kind
}

func (self *StackSlot) String() string {
    if self.InCallerFrame() {
        return fmt.Sprintf("caller-stack:%d", self.Index())
    } else {
        return fmt.Sprintf("stack:%d", self.Index())
    }
}
