package main

import (
	"regexp"
	"sync"
	"testing"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

var indexPattern = regexp.MustCompile(`ON (\w+) USING hnsw \((\w+) vector_cosine_ops\)`)

// Guards the index statements against drift from the model definitions:
// an index on a column GORM does not generate fails at migration time.
func TestIndexColumnsMatchModels(t *testing.T) {
	columnsByTable := map[string]map[string]bool{}
	for _, m := range []interface{}{&model.OnenotePage{}, &model.OnenoteChunk{}, &model.AthenaTicket{}} {
		s, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		cols := map[string]bool{}
		for _, f := range s.Fields {
			if f.DBName != "" {
				cols[f.DBName] = true
			}
		}
		columnsByTable[s.Table] = cols
	}

	require.Len(t, indexSQL, 4)
	for _, stmt := range indexSQL {
		m := indexPattern.FindStringSubmatch(stmt)
		require.NotNil(t, m, "unparseable index statement: %s", stmt)

		table, column := m[1], m[2]
		cols, ok := columnsByTable[table]
		require.True(t, ok, "index targets unknown table %s", table)
		require.True(t, cols[column], "index targets missing column %s.%s", table, column)
	}
}
