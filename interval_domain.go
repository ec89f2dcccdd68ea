// Copyright 2021 Irfan Sharif.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package solver

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Interval is a scheduling interval value: the half-open range
// [Start, Start+Length). It's the kind of Value a FiniteIntervalDomain holds.
type Interval struct {
	Start, Length int64
}

// End is the interval's exclusive end, Start+Length.
func (iv Interval) End() int64 { return iv.Start + iv.Length }

// String is part of fmt.Stringer.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.Start, iv.End())
}

// FiniteIntervalDomain represents all scheduling intervals [start, start+len)
// with lowestMin <= start, start+len <= highestMax, minLength <= len <=
// maxLength, and start/len multiples of resolution relative to lowestMin. It
// requires non-trivial range narrowing beyond simple value removal, so it
// exposes dedicated bound-tightening operations rather than Remove.
type FiniteIntervalDomain struct {
	lowestMin, highestMax int64
	minLength, maxLength  int64
	resolution            int64

	changed bool
}

var _ Domain = &FiniteIntervalDomain{}

// NewFiniteIntervalDomain constructs a FiniteIntervalDomain. maxLength
// defaults to minLength -- a fixed-duration interval unless a range is given
// explicitly -- and is clamped down to the lowestMin..highestMax span if
// given larger than it; resolution defaults to 1. It fails (returns a
// *Misuse error) when: highestMax < lowestMin; minLength > maxLength;
// resolution <= 0; or minLength > highestMax-lowestMin.
func NewFiniteIntervalDomain(lowestMin, highestMax, minLength int64, rest ...int64) (*FiniteIntervalDomain, error) {
	maxLength := minLength
	resolution := int64(1)
	if len(rest) > 0 {
		maxLength = rest[0]
	}
	if len(rest) > 1 {
		resolution = rest[1]
	}
	if len(rest) > 2 {
		return nil, NewMisuse("too many arguments to NewFiniteIntervalDomain: %d", len(rest))
	}

	if highestMax < lowestMin {
		return nil, NewMisuse("invalid interval domain: highestMax (%d) < lowestMin (%d)", highestMax, lowestMin)
	}
	if minLength < 0 {
		return nil, NewMisuse("invalid interval domain: minLength (%d) must be non-negative", minLength)
	}
	if resolution <= 0 {
		return nil, NewMisuse("invalid interval domain: resolution (%d) must be positive", resolution)
	}
	if minLength > highestMax-lowestMin {
		return nil, NewMisuse("invalid interval domain: minLength (%d) exceeds span (%d)", minLength, highestMax-lowestMin)
	}
	if maxLength > highestMax-lowestMin {
		maxLength = highestMax - lowestMin // adjusted down, not an error (mirrors constructor leniency)
	}
	if minLength > maxLength {
		return nil, NewMisuse("invalid interval domain: minLength (%d) > maxLength (%d)", minLength, maxLength)
	}

	return &FiniteIntervalDomain{
		lowestMin: lowestMin, highestMax: highestMax,
		minLength: minLength, maxLength: maxLength,
		resolution: resolution,
	}, nil
}

// LowestMin is the current lower bound on the interval's start.
func (d *FiniteIntervalDomain) LowestMin() int64 { return d.lowestMin }

// HighestMax is the current upper bound on the interval's end.
func (d *FiniteIntervalDomain) HighestMax() int64 { return d.highestMax }

// MinLength is the current lower bound on the interval's length.
func (d *FiniteIntervalDomain) MinLength() int64 { return d.minLength }

// MaxLength is the current upper bound on the interval's length.
func (d *FiniteIntervalDomain) MaxLength() int64 { return d.maxLength }

// Resolution is the granularity of starts and lengths.
func (d *FiniteIntervalDomain) Resolution() int64 { return d.resolution }

// LowestMax is the earliest the interval could possibly end:
// lowestMin + minLength.
func (d *FiniteIntervalDomain) LowestMax() int64 { return d.lowestMin + d.minLength }

// HighestMin is the latest the interval could possibly start:
// highestMax - minLength.
func (d *FiniteIntervalDomain) HighestMin() int64 { return d.highestMax - d.minLength }

// SetLowestMin raises the start lower bound to max(lowestMin, x), tightens
// maxLength if needed to keep the domain well-formed, and fails if the
// resulting domain is empty.
func (d *FiniteIntervalDomain) SetLowestMin(x int64) error {
	if x <= d.lowestMin {
		return nil
	}
	d.lowestMin = x
	if d.maxLength > d.highestMax-d.lowestMin {
		d.maxLength = d.highestMax - d.lowestMin
	}
	d.changed = true
	return d.checkNonEmpty("setLowestMin")
}

// SetHighestMax lowers the end upper bound to min(highestMax, x), tightens
// maxLength if needed, and fails if the resulting domain is empty.
func (d *FiniteIntervalDomain) SetHighestMax(x int64) error {
	if x >= d.highestMax {
		return nil
	}
	d.highestMax = x
	if d.maxLength > d.highestMax-d.lowestMin {
		d.maxLength = d.highestMax - d.lowestMin
	}
	d.changed = true
	return d.checkNonEmpty("setHighestMax")
}

// SetMinLength raises the length lower bound to max(minLength, l) and fails
// if it now exceeds maxLength or empties the domain.
func (d *FiniteIntervalDomain) SetMinLength(l int64) error {
	if l <= d.minLength {
		return nil
	}
	d.minLength = l
	d.changed = true
	return d.checkNonEmpty("setMinLength")
}

// SetMaxLength lowers the length upper bound to min(maxLength, l) and fails
// if it now drops below minLength or empties the domain.
func (d *FiniteIntervalDomain) SetMaxLength(l int64) error {
	if l >= d.maxLength {
		return nil
	}
	d.maxLength = l
	d.changed = true
	return d.checkNonEmpty("setMaxLength")
}

func (d *FiniteIntervalDomain) checkNonEmpty(op string) error {
	if d.minLength > d.maxLength || d.Size() == 0 {
		return NewInconsistency(fmt.Sprintf("%s emptied interval domain %s", op, d.String()))
	}
	return nil
}

// Overlap reports whether the value ranges of two interval domains
// intersect.
func (d *FiniteIntervalDomain) Overlap(other *FiniteIntervalDomain) bool {
	return d.lowestMin < other.highestMax && other.lowestMin < d.highestMax
}

// Size is part of the Domain interface: the number of distinct
// (start, length) pairs still representable.
func (d *FiniteIntervalDomain) Size() int {
	if d.minLength > d.maxLength {
		return 0
	}
	var total int64
	for length := d.minLength; length <= d.maxLength; length += d.resolution {
		maxStart := d.highestMax - length
		if maxStart < d.lowestMin {
			continue
		}
		total += (maxStart-d.lowestMin)/d.resolution + 1
	}
	return int(total)
}

// Values is part of enumerating a FiniteIntervalDomain's candidates: every
// (start, length) pair still representable, as Interval values.
func (d *FiniteIntervalDomain) Values() []Interval {
	var ivs []Interval
	for length := d.minLength; length <= d.maxLength; length += d.resolution {
		maxStart := d.highestMax - length
		for start := d.lowestMin; start <= maxStart; start += d.resolution {
			ivs = append(ivs, Interval{Start: start, Length: length})
		}
	}
	return ivs
}

// HasChanged is part of the Domain interface.
func (d *FiniteIntervalDomain) HasChanged() bool { return d.changed }

// ResetChanged is part of the Domain interface.
func (d *FiniteIntervalDomain) ResetChanged() { d.changed = false }

// copy is part of the Domain interface.
func (d *FiniteIntervalDomain) copy() Domain {
	cp := *d
	cp.changed = false
	return &cp
}

// soleValue is part of the Domain interface.
func (d *FiniteIntervalDomain) soleValue() Value {
	return d.Values()[0]
}

// String is part of the Domain interface.
func (d *FiniteIntervalDomain) String() string {
	return fmt.Sprintf("start in [%d,%d], length in [%d,%d], step %d (%s interval%s)",
		d.lowestMin, d.highestMax, d.minLength, d.maxLength, d.resolution,
		humanize.Comma(int64(d.Size())), plural(d.Size()))
}
