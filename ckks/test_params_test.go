package ckks

import (
	"github.com/TaihouKai/HElib/rlwe"
)

// testChainLiteral is a chain of five primes, the outer two being 60-bit special primes.
var testChainLiteral = rlwe.ChainLiteral{LogQ: []int{60, 40, 40, 40, 60}}

var (
	// testReferenceLiteral is the calibration instance m=16, r=8.
	testReferenceLiteral = ParametersLiteral{
		M:        16,
		LogScale: 8,
		Chain:    testChainLiteral,
	}

	testParamsLiteral = []ParametersLiteral{
		testReferenceLiteral,
		{M: 2, LogScale: 10, Chain: testChainLiteral},
		{M: 4, LogScale: 12, Chain: testChainLiteral},
		{M: 8, LogScale: 20, Chain: testChainLiteral},
		{M: 64, LogScale: 30, Chain: testChainLiteral},
		{M: 64, LogScale: 30, Backend: Naive, Chain: testChainLiteral},
		{M: 15, LogScale: 20, Chain: testChainLiteral},
		{M: 21, LogScale: 25, Chain: testChainLiteral},
		{M: 35, LogScale: 30, Chain: testChainLiteral},
		{M: 45, LogScale: 16.5, Chain: testChainLiteral},
		{M: 91, LogScale: 40, Chain: testChainLiteral},
	}

	// testParamsLiteralLong are skipped with -short.
	testParamsLiteralLong = []ParametersLiteral{
		{M: 1 << 12, LogScale: 45, Chain: testChainLiteral},
		{M: 1 << 10, LogScale: 40, Backend: Naive, Chain: testChainLiteral},
		{M: 255, LogScale: 30, Chain: testChainLiteral},
	}
)
