package importer

import (
	"strconv"
	"strings"
)

// NumberValue is the outcome of numeric normalization. Failure is tagged,
// distinct from a valid value equal to zero; the caller reports severity.
type NumberValue struct {
	Value float64
	OK    bool
}

// NormalizeNumber turns a raw cell into a signed decimal. Numeric cells pass
// through. For text the separator rules are: with both ',' and '.' present,
// whichever occurs last is the decimal separator and the other is stripped;
// a comma alone is decimal only when it is single with at most two digits
// after it, otherwise every comma is a thousands separator; a lone dot is
// handed to the parser unchanged.
func NormalizeNumber(cell Cell) NumberValue {
	switch cell.Kind {
	case CellNumber:
		return NumberValue{Value: cell.Number, OK: true}
	case CellText:
	default:
		return NumberValue{}
	}

	s := strings.Join(strings.Fields(cell.Text), "")
	if s == "" {
		return NumberValue{}
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			i := strings.LastIndex(s, ",")
			s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NumberValue{}
	}
	return NumberValue{Value: v, OK: true}
}
