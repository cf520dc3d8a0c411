package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/domain/book"
	"matchbook/infra/memory"
	"matchbook/infra/sequence"
	"matchbook/service"
	"matchbook/snapshot"
)

func newTestService() *service.OrderService {
	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	ring := memory.NewRetireRing(1 << 10)
	reader := snapshot.NewReader()
	return service.NewOrderService(pool, ring, reader, sequence.New(0), nil, nil, nil)
}

func TestSessionFullExampleStream(t *testing.T) {
	input := strings.Join([]string{
		"O 10000 IBM B 10 100.00000",
		"O 10001 IBM B 10 99.00000",
		"O 10002 IBM S 5 101.00000",
		"O 10003 IBM S 5 100.00000",
		"O 10004 IBM S 5 100.00000",
		"X 10002",
		"O 10005 IBM B 10 99.00000",
		"O 10006 IBM B 10 100.00000",
		"O 10007 IBM S 10 101.00000",
		"O 10008 IBM S 10 102.00000",
		"O 10008 IBM S 10 102.00000",
		"O 10009 IBM S 10 102.00000",
		"P",
		"O 10010 IBM B 13 102.00000",
	}, "\n") + "\n"

	expected := strings.Join([]string{
		"F 10003 IBM 5 100.00000",
		"F 10000 IBM 5 100.00000",
		"F 10004 IBM 5 100.00000",
		"F 10000 IBM 5 100.00000",
		"X 10002",
		"E 10008 Duplicate order id",
		"P 10009 IBM S 10 102.00000",
		"P 10008 IBM S 10 102.00000",
		"P 10007 IBM S 10 101.00000",
		"P 10006 IBM B 10 100.00000",
		"P 10001 IBM B 10 99.00000",
		"P 10005 IBM B 10 99.00000",
		"F 10010 IBM 10 101.00000",
		"F 10007 IBM 10 101.00000",
		"F 10010 IBM 3 102.00000",
		"F 10008 IBM 3 102.00000",
	}, "\n") + "\n"

	var out bytes.Buffer
	sess := NewSession(newTestService(), nil)
	require.NoError(t, sess.Run(strings.NewReader(input), &out))
	assert.Equal(t, expected, out.String())
}

func TestSessionErrorsAreNotFatal(t *testing.T) {
	sess := NewSession(newTestService(), nil)

	assert.Equal(t, []string{"E 0 Malformed command"}, sess.Execute("garbage"))
	assert.Equal(t, []string{"E 7 Order not found"}, sess.Execute("X 7"))
	assert.Equal(t, []string{"E 1 Invalid quantity"}, sess.Execute("O 1 IBM B 0 1.00000"))

	// The stream keeps going after errors.
	assert.Empty(t, sess.Execute("O 1 IBM B 5 1.00000"))
	assert.Equal(t, []string{"X 1"}, sess.Execute("X 1"))
}

func TestSessionSkipsBlankLines(t *testing.T) {
	var out bytes.Buffer
	sess := NewSession(newTestService(), nil)
	input := "\n\nO 1 IBM B 5 1.00000\n\nP\n"
	require.NoError(t, sess.Run(strings.NewReader(input), &out))
	assert.Equal(t, "P 1 IBM B 5 1.00000\n", out.String())
}

func TestSessionPrintEmptyBook(t *testing.T) {
	sess := NewSession(newTestService(), nil)
	assert.Empty(t, sess.Execute("P"))
}
