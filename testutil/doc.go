// Package testutil provides testing utilities for vecbin.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.IntVectors(100, 8)            // full int64 range, edges included
//	vecs = rng.GaussianIntVectors(100, centers, 5) // clustered points
//	doc := testutil.DatasetJSON(vecs, nil)
//
// # Decoding Output
//
//	hdr, values, err := testutil.Decode(out)
//
// Decode is the inverse of the packed layout and exists to verify
// round-trips; the converter itself never reads its output back.
package testutil
