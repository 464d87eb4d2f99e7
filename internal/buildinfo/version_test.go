package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringAndTemplate(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })

	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-02T03:04:05Z"

	assert.Equal(t, "version: v1.0.0\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z", String())
	assert.Equal(t, "{{.Name}} version v1.0.0\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z\n", Template())
}
