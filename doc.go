// Package vecbin converts JSON datasets of equal-length integer vectors into
// the packed binary layout read by native numerical programs such as k-means
// implementations.
//
// # Quick Start
//
//	out, res, err := vecbin.Encode([]byte(`{"vectors": [[1,2],[3,4],[5,6]]}`))
//	// res.Dimension == 2, res.Count == 3, len(out) == 12 + 8*6
//
// Converting between stores:
//
//	conv := vecbin.New(vecbin.WithLogger(vecbin.NewTextLogger(slog.LevelInfo)))
//	src := blobstore.Location{Store: blobstore.NewLocalStore(""), Name: "points.json"}
//	dst := blobstore.Location{Store: s3.NewStore(client, "bucket", ""), Name: "points.bin"}
//	res, err := conv.Convert(ctx, src, dst)
//
// # Input
//
//	{ "vectors": [ [int, ...], [int, ...], ... ] }
//
// Other top-level keys are ignored. The first vector defines the dimension.
// Every element must be an integer literal that fits in a signed 64-bit value.
//
// # Output
//
//	offset 0   dimension  uint32, big-endian
//	offset 4   count      uint64, big-endian
//	offset 12  data       count*dimension int64, big-endian, vector-major
//
// # Failure Model
//
// The whole input is validated before a single byte is produced. Validation
// stops at the first problem and returns one of the typed errors re-exported
// here (ErrDimensionMismatch, ErrScalarOutOfRange, ...); all of them satisfy
// errors.Is(err, ErrValidation). Nothing is written to the destination on
// failure, and local destinations are replaced atomically on success.
package vecbin
