// Package scan validates byte buffers as UTF-8 text using the cursor
// primitive and reports every malformed sequence with its line and column.
//
// LineReader walks a buffer one logical line at a time. CR, LF and CRLF all
// end a line, and each line's text is captured from the buffer without
// copying. Scanner drives a LineReader over a whole buffer or file and
// aggregates the diagnostics, line records and statistics into a Result.
//
// After a malformed sequence the reader resumes according to a Policy:
//
//   - PolicyResync steps back over a non-continuation byte found inside a
//     sequence so it is examined again as a lead byte.
//   - PolicySkip resumes wherever validation stopped. A line terminator
//     swallowed by a broken sequence does not end the line.
//   - PolicyAbort stops at the first diagnostic.
package scan
