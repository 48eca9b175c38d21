// Package dataio reads creep datafiles: plain text files with
// whitespace-separated columns, one of which holds time and another the
// measured deformation.
//
// Overview
//
//   - Format describes the file layout: which columns to read, the comment
//     prefix, how many leading rows to skip, and the multiplicative
//     constants converting file-native units to seconds and micrometres.
//
//   - ReadWindow(path, format, tStart, tHold) returns the (time,
//     deformation) columns restricted to the holding interval
//     [tStart, tStart+tHold]. The window is applied on file-native time
//     values; unit conversion happens afterwards.
//
//   - Errors (errs.go):
//     ErrBadFormat   : a non-comment line did not parse into enough columns
//     ErrEmptyWindow : no data points remain inside [tStart, tStart+tHold]
//
// The interval convention: section I of a creep curve is the loading ramp
// (0, tStart]; section II is the hold at maximum load [tStart,
// tStart+tHold]. Only section II is fitted.
package dataio
