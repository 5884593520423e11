package sqlite

import (
	"database/sql/driver"
	"fmt"

	gosqlite "github.com/glebarez/go-sqlite"

	"user-table-service/pkg/search"
)

// lowerFunc is registered on the driver for every connection. The built-in
// LOWER only folds ASCII letters.
const lowerFunc = "unicode_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return search.Normalize(v), nil
	case []byte:
		return search.Normalize(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", lowerFunc, v)
	}
}
