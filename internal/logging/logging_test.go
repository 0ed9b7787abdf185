package logging

import (
	"bytes"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ calculation.Logger = Adapter{}

func TestAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	require.NoError(t, err)

	a := Adapter{Log: log}
	a.Debugf("hidden %d", 1)
	a.Infof("hidden %d", 2)
	a.Warnf("depleted at age %d", 88)
	a.Errorf("failed: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "depleted at age 88")
	assert.Contains(t, out, "failed: boom")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}
