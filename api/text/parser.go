package text

import (
	"strconv"
	"strings"

	"matchbook/domain/book"
)

type CommandKind uint8

const (
	CmdPlace CommandKind = iota
	CmdCancel
	CmdPrint
)

// Command is one fully validated protocol line.
type Command struct {
	Kind   CommandKind
	OID    uint32
	Symbol string
	Side   book.Side
	Qty    int64
	Price  int64
}

// Protocol error descriptions. These become the free-text tail of an
// E result line, so the exact wording is part of the wire contract.
const (
	MsgDuplicateOrderID = "Duplicate order id"
	MsgOrderNotFound    = "Order not found"
	MsgMalformed        = "Malformed command"
	MsgInvalidOrderID   = "Invalid order id"
	MsgInvalidSymbol    = "Invalid symbol"
	MsgInvalidSide      = "Invalid side"
	MsgInvalidQuantity  = "Invalid quantity"
	MsgInvalidPrice     = "Invalid price"
)

// ParseError carries the offending oid when it could be read off the
// line, and the sentinel 0 for structurally broken input (a valid oid
// is always positive).
type ParseError struct {
	OID uint32
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// Parse validates one command line. It performs every input check the
// core relies on: arity, oid range, symbol shape, side, 16-bit
// quantity and strict 7.5 price format.
func Parse(line string) (Command, *ParseError) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, &ParseError{Msg: MsgMalformed}
	}

	switch fields[0] {
	case "O":
		return parsePlace(fields)
	case "X":
		return parseCancel(fields)
	case "P":
		if len(fields) != 1 {
			return Command{}, &ParseError{Msg: MsgMalformed}
		}
		return Command{Kind: CmdPrint}, nil
	default:
		return Command{}, &ParseError{Msg: MsgMalformed}
	}
}

func parsePlace(fields []string) (Command, *ParseError) {
	if len(fields) != 6 {
		return Command{}, &ParseError{OID: bestEffortOID(fields), Msg: MsgMalformed}
	}

	oid, perr := parseOID(fields[1])
	if perr != nil {
		return Command{}, perr
	}

	symbol := fields[2]
	if !validSymbol(symbol) {
		return Command{}, &ParseError{OID: oid, Msg: MsgInvalidSymbol}
	}

	var side book.Side
	switch fields[3] {
	case "B":
		side = book.Buy
	case "S":
		side = book.Sell
	default:
		return Command{}, &ParseError{OID: oid, Msg: MsgInvalidSide}
	}

	qty, err := strconv.ParseUint(fields[4], 10, 16)
	if err != nil || qty == 0 {
		return Command{}, &ParseError{OID: oid, Msg: MsgInvalidQuantity}
	}

	px, err := ParsePrice(fields[5])
	if err != nil {
		return Command{}, &ParseError{OID: oid, Msg: MsgInvalidPrice}
	}

	return Command{
		Kind:   CmdPlace,
		OID:    oid,
		Symbol: symbol,
		Side:   side,
		Qty:    int64(qty),
		Price:  px,
	}, nil
}

func parseCancel(fields []string) (Command, *ParseError) {
	if len(fields) != 2 {
		return Command{}, &ParseError{OID: bestEffortOID(fields), Msg: MsgMalformed}
	}
	oid, perr := parseOID(fields[1])
	if perr != nil {
		return Command{}, perr
	}
	return Command{Kind: CmdCancel, OID: oid}, nil
}

func parseOID(s string) (uint32, *ParseError) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, &ParseError{Msg: MsgInvalidOrderID}
	}
	return uint32(v), nil
}

// bestEffortOID recovers the oid from a malformed line when the second
// field still parses, so the E line can name the offender.
func bestEffortOID(fields []string) uint32 {
	if len(fields) < 2 {
		return 0
	}
	v, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func validSymbol(s string) bool {
	if len(s) == 0 || len(s) > 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}
