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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestConstant_Cache(t *testing.T) {
    require.Same(t, ConstInt(5), ConstInt(5))
    require.Same(t, Long0, ConstLong(0))
    require.Same(t, Long1, ConstLong(1))
    require.NotSame(t, ConstInt(1000), ConstInt(1000))
    require.Equal(t, int32(1000), ConstInt(1000).AsInt())
    require.Equal(t, int64(-7), ConstLong(-7).AsLong())
    require.Equal(t, float32(1.0), Float1.AsFloat())
    require.Equal(t, 0.0, Double0.AsDouble())
    require.Panics(t, func() { ConstInt(1).AsLong() })
    require.Panics(t, func() { Long0.AsFloat() })
}

func TestStackSlot_Frames(t *testing.T) {
    require.Same(t, SlotAt(K_long, 7), SlotAt(K_long, 7))
    require.NotSame(t, SlotAt(K_long, 100), SlotAt(K_long, 100))
    require.Panics(t, func() { SlotAt(K_int, -1) })

    /* the caller frame is encoded with a negative raw index */
    s := CallerSlotAt(K_object, 2)
    require.True(t, s.InCallerFrame())
    require.Equal(t, 2, s.Index())
    require.Equal(t, -3, s.RawIndex())
    require.False(t, SlotAt(K_object, 2).InCallerFrame())
    require.Equal(t, 100, SlotAt(K_int, 100).Index())
}

func TestAddress_Checks(t *testing.T) {
    require.Panics(t, func() { NewAddress(K_int, ConstInt(1), Illegal, 0) })
    a := NewAddress(K_int, Var(K_object, 0), Illegal, 4)
    require.Equal(t, K_int, a.Kind())
    require.True(t, IsAddress(a))
    require.True(t, IsVariableOrRegister(a.Base))
}

func TestCallingConvention_Locations(t *testing.T) {
    cc := NewCallingConvention([]Value { Reg(K_long, 0), CallerSlotAt(K_long, 0) }, 8)
    require.Equal(t, 8, cc.StackSize)
    require.Len(t, cc.Locations, 2)
    require.Panics(t, func() {
        NewCallingConvention([]Value { Var(K_int, 0) }, 0)
    })
}
