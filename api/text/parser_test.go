package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/domain/book"
)

func TestParsePlace(t *testing.T) {
	cmd, perr := Parse("O 10000 IBM B 10 100.00000")
	require.Nil(t, perr)
	assert.Equal(t, Command{
		Kind:   CmdPlace,
		OID:    10000,
		Symbol: "IBM",
		Side:   book.Buy,
		Qty:    10,
		Price:  10000000,
	}, cmd)
}

func TestParseCancelAndPrint(t *testing.T) {
	cmd, perr := Parse("X 10002")
	require.Nil(t, perr)
	assert.Equal(t, CmdCancel, cmd.Kind)
	assert.Equal(t, uint32(10002), cmd.OID)

	cmd, perr = Parse("P")
	require.Nil(t, perr)
	assert.Equal(t, CmdPrint, cmd.Kind)
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name string
		line string
		oid  uint32
		msg  string
	}{
		{"empty action", "Q 1 IBM B 1 1.00000", 0, MsgMalformed},
		{"place arity", "O 1 IBM B 1", 1, MsgMalformed},
		{"cancel arity", "X 1 2", 1, MsgMalformed},
		{"print arity", "P 1", 0, MsgMalformed},
		{"zero oid", "O 0 IBM B 1 1.00000", 0, MsgInvalidOrderID},
		{"oid overflow", "O 4294967296 IBM B 1 1.00000", 0, MsgInvalidOrderID},
		{"oid not numeric", "O abc IBM B 1 1.00000", 0, MsgInvalidOrderID},
		{"symbol too long", "O 1 TOOLONGSYM B 1 1.00000", 1, MsgInvalidSymbol},
		{"symbol not alnum", "O 1 IBM-X B 1 1.00000", 1, MsgInvalidSymbol},
		{"bad side", "O 1 IBM Z 1 1.00000", 1, MsgInvalidSide},
		{"zero qty", "O 1 IBM B 0 1.00000", 1, MsgInvalidQuantity},
		{"qty overflow", "O 1 IBM B 65536 1.00000", 1, MsgInvalidQuantity},
		{"negative qty", "O 1 IBM B -5 1.00000", 1, MsgInvalidQuantity},
		{"price missing frac", "O 1 IBM B 1 100", 1, MsgInvalidPrice},
		{"price short frac", "O 1 IBM B 1 100.0000", 1, MsgInvalidPrice},
		{"price long frac", "O 1 IBM B 1 100.000000", 1, MsgInvalidPrice},
		{"price too many int digits", "O 1 IBM B 1 12345678.00000", 1, MsgInvalidPrice},
		{"price zero", "O 1 IBM B 1 0.00000", 1, MsgInvalidPrice},
		{"price negative", "O 1 IBM B 1 -1.00000", 1, MsgInvalidPrice},
		{"price not numeric", "O 1 IBM B 1 abc.defgh", 1, MsgInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, perr := Parse(tt.line)
			require.NotNil(t, perr)
			assert.Equal(t, tt.msg, perr.Msg)
			assert.Equal(t, tt.oid, perr.OID)
		})
	}
}

func TestParsePriceRoundTrip(t *testing.T) {
	tests := []struct {
		text   string
		scaled int64
	}{
		{"0.00001", 1},
		{"1.00000", 100000},
		{"100.00000", 10000000},
		{"9999999.99999", 999999999999},
		{"123.45678", 12345678},
	}
	for _, tt := range tests {
		px, err := ParsePrice(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.scaled, px)
		assert.Equal(t, tt.text, FormatPrice(px))
	}
}

func TestParseToleratesExtraWhitespace(t *testing.T) {
	cmd, perr := Parse("  O  7   IBM  S  3  99.50000 ")
	require.Nil(t, perr)
	assert.Equal(t, uint32(7), cmd.OID)
	assert.Equal(t, int64(9950000), cmd.Price)
}
