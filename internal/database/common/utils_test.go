package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSQLStatements(t *testing.T) {
	script := `
-- skills catalog
CREATE TABLE skills (id INTEGER PRIMARY KEY, name TEXT);
INSERT INTO skills (name) VALUES ('C#; .NET');

INSERT INTO skills (name) VALUES ('Go')`

	stmts := ParseSQLStatements(script)

	assert.Equal(t, []string{
		"CREATE TABLE skills (id INTEGER PRIMARY KEY, name TEXT)",
		"INSERT INTO skills (name) VALUES ('C#; .NET')",
		"INSERT INTO skills (name) VALUES ('Go')",
	}, stmts)
}

func TestParseSQLStatementsEmpty(t *testing.T) {
	assert.Empty(t, ParseSQLStatements("-- nothing here\n;\n"))
}
