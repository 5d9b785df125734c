package schemas

import (
	"encoding/json"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	names, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	require.Contains(t, names, ExtractionResult)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := Read(name)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", name)

			_, hasSchema := schemaObj["$schema"]
			_, hasDefs := schemaObj["definitions"]
			assert.True(t, hasSchema, "schema should declare $schema")
			assert.True(t, hasDefs, "schema should carry definitions")
		})
	}
}

func TestEmbeddedMatchesDisk(t *testing.T) {
	onDisk, err := os.ReadFile(ExtractionResult)
	require.NoError(t, err)

	embedded, err := Read(ExtractionResult)
	require.NoError(t, err)
	assert.Equal(t, onDisk, embedded)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read("job_profile.schema.json")
	assert.Error(t, err)
}
