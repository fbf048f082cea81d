/*
File    : volsung/logging/logging_test.go
*/
package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorfWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	Errorf(&buf, "line %d: %s", 3, "bad token")
	assert.Contains(t, buf.String(), "line 3: bad token")
}

func TestInfofWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	Infof(&buf, "listening on %s", ":9000")
	assert.Contains(t, buf.String(), "listening on :9000")
}

func TestDiagSinkPrefixesMessage(t *testing.T) {
	var buf bytes.Buffer
	sink := DiagSink(&buf, "[parse] ")
	sink("unexpected token")
	assert.Contains(t, buf.String(), "[parse] unexpected token")
}
