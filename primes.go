// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hybrid

import "math"

// primes is an ascending table of table sizes. Successive entries grow by
// roughly 1.2x so that a request for 2*count rarely overshoots by much.
var primes = [...]int{
	3, 7, 11, 17, 23, 29, 37, 47, 59, 71, 89, 107, 131, 163, 197, 239, 293,
	353, 431, 521, 631, 761, 919, 1103, 1327, 1597, 1931, 2333, 2801, 3371,
	4049, 4861, 5839, 7013, 8419, 10103, 12143, 14591, 17519, 21023, 25229,
	30293, 36353, 43627, 52361, 62851, 75431, 90523, 108631, 130363, 156437,
	187751, 225307, 270371, 324449, 389357, 467237, 560689, 672827, 807403,
	968897, 1162687, 1395263, 1674319, 2009191, 2411033, 2893249, 3471899,
	4166287, 4999559, 5999471, 7199369,
}

// isPrime reports whether n is prime using trial division by odd numbers.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n&1 == 0 {
		return n == 2
	}
	limit := int(math.Sqrt(float64(n)))
	for d := 3; d <= limit; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// prime returns the table size to use for a request of min entries: the
// first entry of primes that is >= min, or for requests beyond the table the
// smallest odd prime >= min.
func prime(min int) int {
	for _, p := range primes {
		if p >= min {
			return p
		}
	}
	for n := min | 1; n < math.MaxInt32; n += 2 {
		if isPrime(n) {
			return n
		}
	}
	return min
}
