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

type _BitVec []uint64

func newBitVec(nb int) _BitVec {
    return make(_BitVec, (nb + 63) >> 6)
}

func (self _BitVec) set(i int) {
    self[i >> 6] |= 1 << (i & 63)
}

func (self _BitVec) clear(i int) {
    self[i >> 6] &^= 1 << (i & 63)
}

func (self _BitVec) test(i int) bool {
    x := i >> 6
    return x < len(self) && self[x] & (1 << (i & 63)) != 0
}

func (self *_BitVec) grow(nb int) {
    for len(*self) < (nb + 63) >> 6 {
        *self = append(*self, 0)
    }
}

/* one bit per (row, column) pair, rows are loop indices and columns are
 * block ids */
type _BitMap2D struct {
    nc   int
    bits _BitVec
}

func newBitMap2D(rows int, cols int) *_BitMap2D {
    return &_BitMap2D {
        nc   : cols,
        bits : newBitVec(rows * cols),
    }
}

func (self *_BitMap2D) set(r int, c int) {
    self.bits.set(r * self.nc + c)
}

func (self *_BitMap2D) test(r int, c int) bool {
    return c < self.nc && self.bits.test(r * self.nc + c)
}

func (self *_BitMap2D) clearRow(r int) {
    for c := 0; c < self.nc; c++ {
        self.bits.clear(r * self.nc + c)
    }
}
