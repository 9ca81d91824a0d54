package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	apperrors "bptrack/internal/errors"
)

const mysqlDuplicateEntry = 1062

// storeErr wraps an unexpected database error so callers see the generic
// store failure while the cause stays inspectable for logs.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}

// isDuplicateKey reports whether err is a MySQL unique constraint violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
