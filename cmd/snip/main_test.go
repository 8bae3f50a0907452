package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv isolates a snip invocation from the user's config and environment.
type testEnv struct {
	dir     string
	dbPath  string
	logPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("SNIP_DB", "")
	t.Setenv("SNIP_LOG_FILE", "")
	t.Setenv("SNIP_LOG_LEVEL", "")
	return &testEnv{
		dir:     dir,
		dbPath:  filepath.Join(dir, "snippets.db"),
		logPath: filepath.Join(dir, "snippets.log"),
	}
}

// snip runs one invocation against the test database and returns stdout,
// stderr and the exit code.
func (e *testEnv) snip(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	full := append([]string{"--db", e.dbPath, "--log-file", e.logPath}, args...)
	code := run(full, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// mustSnip runs an invocation that is expected to succeed.
func (e *testEnv) mustSnip(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := e.snip(args...)
	require.Equal(t, ExitSuccess, code, "snip %v failed: %s", args, stderr)
	return stdout
}

func TestPutGet(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustSnip(t, "put", "recipe", "2 cups flour")
	assert.Equal(t, "Stored snippet as recipe, hidden=false\n", out)

	out = env.mustSnip(t, "get", "recipe")
	assert.Equal(t, "2 cups flour\n", out)
}

func TestPutGet_EmptyName(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustSnip(t, "put", "", "body")
	assert.Equal(t, "Stored snippet as , hidden=false\n", out)

	assert.Equal(t, "body\n", env.mustSnip(t, "get", ""))
	assert.Equal(t, "\n", env.mustSnip(t, "catalog"))
}

func TestPut_HideShow(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustSnip(t, "put", "secret", "classified", "--hide")
	assert.Equal(t, "Stored snippet as secret, hidden=true\n", out)

	out = env.mustSnip(t, "search", "classified")
	assert.Equal(t, "No snippets found matching \"classified\"\n", out)

	out = env.mustSnip(t, "put", "secret", "classified", "--show")
	assert.Equal(t, "Stored snippet as secret, hidden=false\n", out)

	out = env.mustSnip(t, "search", "classified")
	assert.Equal(t, "secret: classified\n", out)
}

func TestPut_Overwrites(t *testing.T) {
	env := newTestEnv(t)

	env.mustSnip(t, "put", "recipe", "2 cups flour")
	env.mustSnip(t, "put", "recipe", "3 cups flour")

	assert.Equal(t, "3 cups flour\n", env.mustSnip(t, "get", "recipe"))
	assert.Equal(t, "recipe\n", env.mustSnip(t, "catalog"))
}

func TestGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, code := env.snip("get", "missing")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Snippet not found: missing\n", stdout)
	assert.Empty(t, stderr)
}

func TestCatalog(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "No snippets stored\n", env.mustSnip(t, "catalog"))

	env.mustSnip(t, "put", "b", "y")
	env.mustSnip(t, "put", "a", "x")
	env.mustSnip(t, "put", "c", "z", "--hide")

	assert.Equal(t, "a\nb\nc\n", env.mustSnip(t, "catalog"))
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	env.mustSnip(t, "put", "recipe", "2 cups flour")
	env.mustSnip(t, "put", "bread", "flour and yeast")
	env.mustSnip(t, "put", "secret", "classified flour", "--hide")

	out := env.mustSnip(t, "search", "flour")
	assert.Equal(t, "bread: flour and yeast\nrecipe: 2 cups flour\n", out)

	out = env.mustSnip(t, "search", "Flour")
	assert.Equal(t, "No snippets found matching \"Flour\"\n", out)
}

func TestJSONOutput(t *testing.T) {
	env := newTestEnv(t)

	var put PutResponse
	require.NoError(t, json.Unmarshal([]byte(env.mustSnip(t, "--json", "put", "secret", "classified", "--hide")), &put))
	assert.Equal(t, "stored", put.Status)
	assert.Equal(t, "secret", put.Snippet.Keyword)
	assert.True(t, put.Snippet.Hidden)

	var got GetResponse
	require.NoError(t, json.Unmarshal([]byte(env.mustSnip(t, "get", "missing", "--json")), &got))
	assert.False(t, got.Found)
	assert.Equal(t, "missing", got.Keyword)

	// A found snippet with an empty message still reports its message.
	env.mustSnip(t, "put", "blank", "")
	out := env.mustSnip(t, "--json", "get", "blank")
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Found)
	assert.Contains(t, out, `"message": ""`)

	var catalog CatalogResponse
	require.NoError(t, json.Unmarshal([]byte(env.mustSnip(t, "--json", "catalog")), &catalog))
	assert.Equal(t, []string{"blank", "secret"}, catalog.Keywords)
	assert.Equal(t, 2, catalog.Count)

	out = env.mustSnip(t, "--json", "search", "classified")
	var search SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &search))
	assert.False(t, search.Found)
	assert.Contains(t, out, `"snippets": []`)
}

func TestExportImport(t *testing.T) {
	src := newTestEnv(t)
	src.mustSnip(t, "put", "recipe", "2 cups flour")
	src.mustSnip(t, "put", "secret", "classified", "--hide")

	backup := filepath.Join(src.dir, "backup.jsonl")
	out := src.mustSnip(t, "export", backup)
	assert.Equal(t, "Exported 2 snippets to "+backup+"\n", out)

	dst := newTestEnv(t)
	out = dst.mustSnip(t, "import", backup)
	assert.Equal(t, "Imported 2 snippets from "+backup+"\n", out)

	assert.Equal(t, "recipe\nsecret\n", dst.mustSnip(t, "catalog"))
	assert.Equal(t, "classified\n", dst.mustSnip(t, "get", "secret"))
	assert.Equal(t, "No snippets found matching \"classified\"\n", dst.mustSnip(t, "search", "classified"))
}

func TestImport_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, code := env.snip("import", filepath.Join(env.dir, "nope.jsonl"))
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "reading import file")
}

func TestImport_DuplicateKeyword(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "dup.jsonl")
	content := `{"keyword":"recipe","message":"2 cups flour"}
{"keyword":"recipe","message":"3 cups flour"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, stderr, code := env.snip("import", path)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, `duplicate keyword "recipe" on line 2`)
	assert.Equal(t, "No snippets stored\n", env.mustSnip(t, "catalog"))
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"delete", "recipe"}},
		{"put missing snippet", []string{"put", "recipe"}},
		{"put too many args", []string{"put", "a", "b", "c"}},
		{"put hide and show", []string{"put", "a", "b", "--hide", "--show"}},
		{"get missing name", []string{"get"}},
		{"search missing string", []string{"search"}},
		{"catalog extra arg", []string{"catalog", "x"}},
		{"unknown flag", []string{"get", "recipe", "--verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			stdout, stderr, code := env.snip(tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), "stderr = %q", stderr)
			assert.Contains(t, stderr, "Usage:")

			// Malformed invocations never reach the store.
			_, err := os.Stat(env.dbPath)
			assert.True(t, os.IsNotExist(err), "database was created for a usage error")
		})
	}
}

func TestConfigError(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SNIP_LOG_LEVEL", "chatty")

	_, stderr, code := env.snip("get", "recipe")
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr, "invalid log level")
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)

	var resp ConfigResponse
	require.NoError(t, json.Unmarshal([]byte(env.mustSnip(t, "config", "--json")), &resp))
	assert.Equal(t, env.dbPath, resp.DBPath)
	assert.Equal(t, env.logPath, resp.LogFile)
	assert.Equal(t, "DEBUG", resp.LogLevel)
	assert.Equal(t, filepath.Join(env.dir, "config", "snip", "config.yml"), resp.GlobalConfig)

	out := env.mustSnip(t, "config")
	assert.Equal(t, "db_path:       "+env.dbPath+"\n"+
		"log_file:      "+env.logPath+"\n"+
		"log_level:     DEBUG\n"+
		"global_config: "+resp.GlobalConfig+"\n", out)

	// config does not open the database.
	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err))
}

// failWriter rejects every write.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestConfigCommand_WriteError(t *testing.T) {
	env := newTestEnv(t)

	var stderr bytes.Buffer
	code := run([]string{"--db", env.dbPath, "--log-file", env.logPath, "config"}, failWriter{}, &stderr)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr.String(), "stdout closed")
}

func TestGlobalConfigFile(t *testing.T) {
	env := newTestEnv(t)
	configDir := filepath.Join(env.dir, "config", "snip")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	yamlDB := filepath.Join(env.dir, "from-yaml.db")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("db_path: "+yamlDB+"\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--log-file", env.logPath, "put", "recipe", "2 cups flour"}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())

	_, err := os.Stat(yamlDB)
	assert.NoError(t, err, "database should be created at the configured db_path")
}

func TestLogFile(t *testing.T) {
	env := newTestEnv(t)
	env.mustSnip(t, "put", "recipe", "2 cups flour")
	env.mustSnip(t, "get", "recipe")

	data, err := os.ReadFile(env.logPath)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, `msg="storing snippet" keyword=recipe`)
	assert.Contains(t, log, `msg="retrieving snippet" keyword=recipe`)
}
