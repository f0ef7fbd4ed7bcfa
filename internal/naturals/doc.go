// Package naturals implements the arithmetic behind numreport: writing the
// sequence of the first n natural numbers and summing the first m of them.
//
// Sums are computed by interchangeable strategies (see [Summer]) registered
// in a [Factory]. Every strategy returns an arbitrary-precision result, so
// no input in the int64 range can overflow.
package naturals
