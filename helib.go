/*
Package helib implements the approximate-number slot encoding of the CKKS scheme over
arbitrary cyclotomic rings Z[X]/(Phi_m(X)).

The library is organized in layers: `ring` -> `rlwe` -> `ckks`.
The `ring` package computes the algebraic structure of the m-th cyclotomic ring and the
ordering of its slots, the `rlwe` package provides the modulus chain that bounds the
precision of an encoding, and the `ckks` package encodes complex slot vectors on integer
polynomials at a fixed-point scale 2^r and decodes them back.
*/
package helib
