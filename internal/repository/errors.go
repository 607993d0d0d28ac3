// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// services to distinguish between different failure scenarios without
// inspecting SQL errors. ErrDuplicate signals a uniqueness violation
// (e.g. registering an email twice), while absence of a row keeps the
// standard sql.ErrNoRows sentinel.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert or update violates a unique
// constraint. Services translate this into a business validation error
// with a domain-specific message.
var ErrDuplicate = errors.New("duplicate")

// mysqlDuplicateEntry is the server error number MySQL reports for a
// unique key violation.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate-entry error.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
