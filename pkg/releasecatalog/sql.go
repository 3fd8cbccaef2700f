// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package releasecatalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/go-sql-driver/mysql"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog/helpers"
	"github.com/immune-gmbh/fwrelease/pkg/types"
	"github.com/jmoiron/sqlx"
)

const (
	tableName = "release_record"

	insertTriesLimit        = 10
	defaultInsertRetryDelay = time.Second
)

// SQL is a Catalog which keeps records in the MySQL table `release_record`
// (see sql/schema.sql).
type SQL struct {
	DB               *sqlx.DB
	InsertRetryDelay time.Duration

	insertTriesLimit uint
}

var _ Catalog = (*SQL)(nil)

// NewSQL connects to MySQL using the DSN (go-sql-driver/mysql format).
func NewSQL(dsn string) (*SQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, ErrInitMySQL{Err: err}
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, ErrMySQLPing{Err: err}
	}

	return NewSQLFromDB(db, "mysql"), nil
}

// NewSQLFromDB wraps an already opened database.
func NewSQLFromDB(db *sql.DB, driverName string) *SQL {
	return &SQL{
		DB:               sqlx.NewDb(db, driverName),
		InsertRetryDelay: defaultInsertRetryDelay,
		insertTriesLimit: insertTriesLimit,
	}
}

// ShouldPublish implements Catalog.
func (c *SQL) ShouldPublish(ctx context.Context, tag types.Tag) (bool, error) {
	var count uint64
	err := c.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM `"+tableName+"` WHERE `tag` = ?", tag)
	if err != nil {
		return false, ErrSelect{Err: err}
	}
	return count == 0, nil
}

// RecordAndPersist implements Catalog.
func (c *SQL) RecordAndPersist(ctx context.Context, tag types.Tag, record types.ReleaseRecord) error {
	if record.Tag != tag {
		return ErrUnableToInsert{Tag: tag, Err: fmt.Errorf("the record is of tag '%s'", record.Tag)}
	}

	values, columns, err := helpers.GetValuesAndColumns(&record, nil)
	if err != nil {
		return ErrUnableToInsert{Tag: tag, Err: err}
	}
	query := "INSERT INTO `" + tableName + "` (" + helpers.ConstructColumns("", columns) + ") VALUES (" + helpers.ConstructPlaceholders(len(columns)) + ")"

	for tryCount := uint(1); ; tryCount++ {
		_, err = c.DB.ExecContext(ctx, query, values...)
		if err == nil {
			return nil
		}
		if mysqlErr := asMySQLError(err, 1062); mysqlErr != nil {
			// MySQL error 1062 is used on duplicate error.
			return ErrAlreadyExists{Tag: tag, Err: mysqlErr}
		}
		if asMySQLError(err, 1205) == nil {
			return ErrUnableToInsert{Tag: tag, Err: err}
		}

		// "Lock wait timeout exceeded; try restarting transaction"
		if tryCount >= c.insertTriesLimit {
			return ErrUnableToInsert{Tag: tag, Err: err}
		}
		logger.FromCtx(ctx).Warnf("insert timeout (%v), retrying...", err)
		select {
		case <-ctx.Done():
			return ErrUnableToInsert{Tag: tag, Err: ctx.Err()}
		case <-time.After(c.InsertRetryDelay):
		}
	}
}

// Get implements Catalog.
func (c *SQL) Get(ctx context.Context, tag types.Tag) (*types.ReleaseRecord, error) {
	var record types.ReleaseRecord
	values, columns, err := helpers.GetValuesAndColumns(&record, nil)
	if err != nil {
		return nil, ErrSelect{Err: err}
	}

	row := c.DB.QueryRowxContext(ctx,
		"SELECT "+helpers.ConstructColumns(tableName, columns)+" FROM `"+tableName+"` WHERE `tag` = ?",
		tag,
	)
	if err := row.Scan(values...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound{Tag: tag}
		}
		return nil, ErrSelect{Err: err}
	}
	return &record, nil
}

// Close implements io.Closer.
func (c *SQL) Close() error {
	return c.DB.Close()
}

func asMySQLError(err error, errNo uint16) *mysql.MySQLError {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errNo {
		return mysqlErr
	}
	return nil
}
