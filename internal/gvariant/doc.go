// Package gvariant implements the GVariant serialization format used for the values
// stored in dconf databases, and renders decoded values in GVariant text format
// (the same format `dconf dump` prints).
//
// Only the parts of the format needed to read and write settings values are covered:
// every basic type, variants, maybes, arrays, tuples and dictionary entries. Decoding
// is strict: data that is not in normal form is rejected with an error instead of
// being replaced by a default value.
package gvariant
