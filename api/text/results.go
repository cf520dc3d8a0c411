package text

import (
	"fmt"

	"matchbook/domain/book"
)

// FormatFill renders one fill leg: F <oid> <symbol> <qty> <price>.
func FormatFill(f book.Fill) string {
	return fmt.Sprintf("F %d %s %d %s", f.OrderID, f.Symbol, f.Qty, FormatPrice(f.Price))
}

// FormatCancel renders a cancel confirmation: X <oid>.
func FormatCancel(oid uint32) string {
	return fmt.Sprintf("X %d", oid)
}

// FormatResting renders one snapshot line:
// P <oid> <symbol> <side> <qty> <price>.
func FormatResting(r book.RestingOrder) string {
	return fmt.Sprintf("P %d %s %s %d %s", r.ID, r.Symbol, r.Side, r.Qty, FormatPrice(r.Price))
}

// FormatError renders E <oid> <message>.
func FormatError(oid uint32, msg string) string {
	return fmt.Sprintf("E %d %s", oid, msg)
}
