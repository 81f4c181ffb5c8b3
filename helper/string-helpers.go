package helper

import (
	"fmt"
	"strconv"
	"strings"
)

// InterfaceToString converts a slice of SQL column values into printable strings.
func InterfaceToString(src []interface{}) []string {
	retval := make([]string, len(src), len(src))
	for i, v := range src {
		switch x := v.(type) {
		case nil:
			retval[i] = ""
		case float64:
			xInt := int(x)
			xFloat := float64(xInt) // truncate the float.
			if x == xFloat {        // if we can treat this as an integer...
				retval[i] = fmt.Sprint(xInt)
			} else { // else we have an exponent...
				retval[i] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		case []uint8: // lib/pq returns some column types as raw bytes.
			retval[i] = string(x)
		default:
			retval[i] = fmt.Sprint(v)
		}
	}
	return retval
}

// SingleQuote wraps s in single quotes for embedding literals in generated SQL.
// Any embedded single quotes are doubled up.
func SingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
