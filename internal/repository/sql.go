package repository

import "database/sql"

// requireAffected treats an UPDATE or DELETE that matched nothing as not found.
// The DSN sets clientFoundRows so unchanged rows still count as matched.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
