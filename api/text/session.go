package text

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"matchbook/domain/book"
)

// OrderService is the slice of the write façade a session needs.
type OrderService interface {
	PlaceOrder(oid uint32, symbol string, side book.Side, qty int64, price int64) ([]book.Fill, error)
	CancelOrder(oid uint32) error
	Snapshot() []book.RestingOrder
}

// Session executes one command stream. Every command yields zero or
// more result lines; a failing command yields exactly one E line and
// the stream continues.
type Session struct {
	svc OrderService
	log *zap.Logger
}

func NewSession(svc OrderService, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{svc: svc, log: log}
}

// Run pumps commands from r until EOF, writing result lines to w.
// Blank lines are skipped. The returned error is a transport error,
// never a command error.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		for _, result := range s.Execute(line) {
			if _, err := out.WriteString(result + "\n"); err != nil {
				return err
			}
		}
		// Flush per command so interactive clients see results
		// before the next command is read.
		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Execute runs a single command line and returns its result lines.
func (s *Session) Execute(line string) []string {
	cmd, perr := Parse(line)
	if perr != nil {
		s.log.Debug("rejected command", zap.String("line", line), zap.String("reason", perr.Msg))
		return []string{FormatError(perr.OID, perr.Msg)}
	}

	switch cmd.Kind {
	case CmdPlace:
		fills, err := s.svc.PlaceOrder(cmd.OID, cmd.Symbol, cmd.Side, cmd.Qty, cmd.Price)
		if err != nil {
			return []string{FormatError(cmd.OID, errorMessage(err))}
		}
		results := make([]string, 0, len(fills))
		for _, f := range fills {
			results = append(results, FormatFill(f))
		}
		return results

	case CmdCancel:
		if err := s.svc.CancelOrder(cmd.OID); err != nil {
			return []string{FormatError(cmd.OID, errorMessage(err))}
		}
		return []string{FormatCancel(cmd.OID)}

	case CmdPrint:
		resting := s.svc.Snapshot()
		results := make([]string, 0, len(resting))
		for _, r := range resting {
			results = append(results, FormatResting(r))
		}
		return results
	}

	return []string{FormatError(0, MsgMalformed)}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, book.ErrDuplicateOrderID):
		return MsgDuplicateOrderID
	case errors.Is(err, book.ErrOrderNotFound):
		return MsgOrderNotFound
	default:
		return err.Error()
	}
}
