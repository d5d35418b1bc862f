package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/trendscope/pkg/repository/migrations"
)

// errCritical is passed to repeater as the terminating error, criticalError matches it
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Is(target error) bool {
	return target == errCritical //nolint:errorlint // sentinel identity
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// withRetry runs fn with backoff while it fails on a locked database, other errors stop it
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err
		}
		return &criticalError{err: err}
	}, errCritical)
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

const timeLayout = migrations.TimeLayout

var readLayouts = migrations.TimeLayouts

// sqlTime stores time as fixed layout text
type sqlTime time.Time

// Value implements driver.Valuer
func (t sqlTime) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(timeLayout), nil
}

// Scan implements sql.Scanner
func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = sqlTime{}
		return nil
	case time.Time:
		*t = sqlTime(v.UTC())
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported time type %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*t = sqlTime{}
		return nil
	}
	for _, layout := range readLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = sqlTime(ts.UTC())
			return nil
		}
	}
	return fmt.Errorf("can't parse time %q", s)
}

// tagsSQL is a JSON array column
type tagsSQL []string

// Value implements driver.Valuer, empty list is stored as []
func (t tagsSQL) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner, null and empty values are read as empty list
func (t *tagsSQL) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = tagsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported tags type %T", src)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		*t = tagsSQL{}
		return nil
	}
	var res []string
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	if res == nil {
		res = []string{}
	}
	*t = res
	return nil
}
