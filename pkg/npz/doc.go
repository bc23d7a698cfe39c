// Package npz reads the array directory of NumPy .npz archives and checks an
// exported weight archive against the export keys of a set of models.
//
// Only headers are decoded: names, dtypes and shapes. Array payloads are
// never loaded, so verifying a large archive is cheap.
package npz
