// Package text implements the line-oriented command protocol around
// the matching service: parsing of O/X/P commands, formatting of
// F/X/P/E result lines, a Session that pumps commands from a reader to
// a writer, and a TCP server that runs one session per connection.
//
// The protocol stream carries result lines only; diagnostics go to the
// structured logger.
package text
