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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimes(t *testing.T) {
	for i, p := range primes {
		require.True(t, isPrime(p), "%d", p)
		if i > 0 {
			require.Greater(t, p, primes[i-1])
		}
	}
}

func TestIsPrime(t *testing.T) {
	var expected []int
	for n := -1; n < 60; n++ {
		if isPrime(n) {
			expected = append(expected, n)
		}
	}
	require.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59}, expected)
	require.True(t, isPrime(2147483647))
	require.False(t, isPrime(2147483649))
}

func TestPrime(t *testing.T) {
	testCases := []struct {
		min      int
		expected int
	}{
		{0, 3},
		{1, 3},
		{3, 3},
		{4, 7},
		{11, 11},
		{12, 17},
		{22, 23},
		{200, 239},
		{7199369, 7199369},
	}
	for _, c := range testCases {
		require.Equal(t, c.expected, prime(c.min), "prime(%d)", c.min)
	}

	// Beyond the table prime returns the smallest prime >= min.
	last := primes[len(primes)-1]
	for min := last + 1; min < last+1000; min += 37 {
		p := prime(min)
		require.GreaterOrEqual(t, p, min)
		require.True(t, isPrime(p))
		for n := min; n < p; n++ {
			require.False(t, isPrime(n), "%d", n)
		}
	}
	require.Less(t, prime(math.MaxInt32/2), math.MaxInt32)
}
