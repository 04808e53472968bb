package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	body := `-- header comment
CREATE TABLE a (id TEXT);

  -- another
CREATE INDEX idx ON a (id);
;
`
	got := splitStatements(body)
	assert.Equal(t, []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX idx ON a (id)"}, got)
}
