package logger

import (
	"testing"

	"github.com/go-kit/kit/log"
)

var _ log.Logger = &TestLogger{}

// TestLogger routes log lines to the test's output
type TestLogger struct {
	T *testing.T
}

func (t *TestLogger) Log(keyvals ...interface{}) error {
	t.T.Helper()
	t.T.Log(keyvals...)
	return nil
}
