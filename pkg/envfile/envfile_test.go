package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// unsetEnv clears name for the duration of the test and restores it after.
func unsetEnv(t *testing.T, name string) {
	t.Helper()

	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func TestLoad_PresentFile(t *testing.T) {
	unsetEnv(t, OpenAIAPIKey)
	path := writeEnv(t, "OPENAI_API_KEY=abc123\n")

	require.NoError(t, Load(path))

	assert.Equal(t, "abc123", Secret(OpenAIAPIKey))
}

func TestLoad_MissingFileIsNoop(t *testing.T) {
	unsetEnv(t, OpenAIAPIKey)

	err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))

	require.NoError(t, err)
	assert.Empty(t, Secret(OpenAIAPIKey))
}

func TestLoad_DoesNotOverrideProcessEnv(t *testing.T) {
	t.Setenv(OpenAIAPIKey, "from-process")
	path := writeEnv(t, "OPENAI_API_KEY=from-file\n")

	require.NoError(t, Load(path))

	assert.Equal(t, "from-process", Secret(OpenAIAPIKey))
}

func TestLoad_Idempotent(t *testing.T) {
	unsetEnv(t, "ENVFILE_TEST_VAR")
	path := writeEnv(t, "ENVFILE_TEST_VAR=one\n")

	require.NoError(t, Load(path))
	require.NoError(t, Load(path))

	assert.Equal(t, "one", Secret("ENVFILE_TEST_VAR"))
}

func TestLoad_MultiplePathsSkipMissing(t *testing.T) {
	unsetEnv(t, "ENVFILE_TEST_A")
	present := writeEnv(t, "ENVFILE_TEST_A=a\n")

	err := Load(filepath.Join(t.TempDir(), "missing.env"), present)

	require.NoError(t, err)
	assert.Equal(t, "a", Secret("ENVFILE_TEST_A"))
}

func TestLoad_DirectoryIsError(t *testing.T) {
	err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestRead_DoesNotTouchProcessEnv(t *testing.T) {
	unsetEnv(t, "ENVFILE_TEST_READ")
	path := writeEnv(t, "ENVFILE_TEST_READ=value\nOTHER=x\n")

	env, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, "value", env["ENVFILE_TEST_READ"])
	assert.Equal(t, "x", env["OTHER"])
	assert.Empty(t, os.Getenv("ENVFILE_TEST_READ"))
}

func TestRead_MissingFile(t *testing.T) {
	env, err := Read(filepath.Join(t.TempDir(), "nope"))

	require.NoError(t, err)
	assert.Empty(t, env)
	assert.NotNil(t, env)
}

func TestSecret_Unset(t *testing.T) {
	unsetEnv(t, "ENVFILE_TEST_UNSET")
	assert.Empty(t, Secret("ENVFILE_TEST_UNSET"))
}

func TestEnv_Lookup(t *testing.T) {
	t.Setenv("ENVFILE_TEST_PROC", "proc")

	env := Env{"ENVFILE_TEST_FILE": "file", "ENVFILE_TEST_PROC": "shadow"}

	assert.Equal(t, "file", env.Lookup("ENVFILE_TEST_FILE"))
	assert.Equal(t, "shadow", env.Lookup("ENVFILE_TEST_PROC"))

	var nilEnv Env
	assert.Equal(t, "proc", nilEnv.Lookup("ENVFILE_TEST_PROC"))
}

func TestEnv_Expand(t *testing.T) {
	env := Env{"KEY": "sk-1"}
	assert.Equal(t, "api_key: sk-1", env.Expand("api_key: ${KEY}"))
}

func TestEnv_ExpandLeavesBareDollarsAlone(t *testing.T) {
	env := Env{"KEY": "sk-1", "1500": "x"}

	assert.Equal(t, "Keep rent under $1500 a month", env.Expand("Keep rent under $1500 a month"))
	assert.Equal(t, "$KEY costs $$5", env.Expand("$KEY costs $$5"))
	assert.Equal(t, "${not valid}", env.Expand("${not valid}"))
	assert.Equal(t, "sk-1/$", env.Expand("${KEY}/$"))
}
