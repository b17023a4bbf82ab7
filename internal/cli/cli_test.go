package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autogypi/internal/app"
)

// ---------- Command tests ----------

func TestRootCommandFlags(t *testing.T) {
	root := newRootCommand()
	flags := []string{
		"root", "config", "output", "output-top", "no-output-top",
		"package", "include-dir", "save", "init-gyp", "source",
		"target-name", "jobs",
	}
	for _, name := range flags {
		flag := root.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("settings"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
	assert.Equal(t, "binding.gyp", root.Flags().Lookup("init-gyp").NoOptDefVal)
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandRejectsArguments(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"stray"})
	require.Error(t, root.Execute())
}

func TestRootCommandGenerates(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "nan"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "nan", "package.json"), []byte("{}"), 0644))
	configPath := filepath.Join(dir, "autogypi.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"dependencies":["nan"],"output":"auto.gypi"}`), 0644))

	root := newRootCommand()
	root.SetArgs([]string{"--config", configPath, "--no-output-top", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(t.Context()))

	data, err := os.ReadFile(filepath.Join(dir, "auto.gypi"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"node_modules/nan\"")
	assert.NoFileExists(t, filepath.Join(dir, "auto-top.gypi"))
}

// ---------- Request building tests ----------

func TestBuildGenerateRequest(t *testing.T) {
	cwd := filepath.FromSlash("/work/addon")
	tests := []struct {
		name     string
		opts     generateOptions
		expected app.GenerateRequest
	}{
		{
			name: "defaults",
			opts: generateOptions{TargetName: "binding", Jobs: 1},
			expected: app.GenerateRequest{
				ConfigPath: filepath.FromSlash("/work/addon/autogypi.json"),
				RootDir:    cwd,
				TargetName: "binding",
				Jobs:       1,
			},
		},
		{
			name: "root moves config",
			opts: generateOptions{Root: "pkg"},
			expected: app.GenerateRequest{
				ConfigPath: filepath.FromSlash("/work/addon/pkg/autogypi.json"),
				RootDir:    filepath.FromSlash("/work/addon/pkg"),
			},
		},
		{
			name: "config sets root",
			opts: generateOptions{Config: "conf/autogypi.json", Output: "build/auto.gypi", OutputTop: "/abs/top.gypi"},
			expected: app.GenerateRequest{
				ConfigPath:    filepath.FromSlash("/work/addon/conf/autogypi.json"),
				RootDir:       filepath.FromSlash("/work/addon/conf"),
				OutputPath:    filepath.FromSlash("/work/addon/build/auto.gypi"),
				OutputTopPath: filepath.FromSlash("/abs/top.gypi"),
			},
		},
		{
			name: "sources need init-gyp",
			opts: generateOptions{Sources: []string{"src/a.cc"}, IncludeDirs: []string{"include"}, Packages: []string{"nan"}},
			expected: app.GenerateRequest{
				ConfigPath:  filepath.FromSlash("/work/addon/autogypi.json"),
				RootDir:     cwd,
				Packages:    []string{"nan"},
				IncludeDirs: []string{filepath.FromSlash("/work/addon/include")},
			},
		},
		{
			name: "init-gyp",
			opts: generateOptions{InitGyp: "binding.gyp", Sources: []string{"src/a.cc"}},
			expected: app.GenerateRequest{
				ConfigPath: filepath.FromSlash("/work/addon/autogypi.json"),
				RootDir:    cwd,
				InitGyp:    filepath.FromSlash("/work/addon/binding.gyp"),
				Sources:    []string{filepath.FromSlash("/work/addon/src/a.cc")},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildGenerateRequest(cwd, tt.opts)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("unexpected request (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	got := resolveStrings(nil, []string{"a", "b"}, "test_key", "test-flag")
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestResolveBool(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "test_key", "test-flag"))
	assert.False(t, resolveBool(nil, false, "test_key", "test-flag"))
}

func TestResolveInt(t *testing.T) {
	assert.Equal(t, 4, resolveInt(nil, 4, "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid configuration",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("error parsing configuration from autogypi.json"),
			expected: 2,
		},
		{
			name: "package root not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("package root not found for dependency nan referenced in configuration autogypi.json"),
			expected: 3,
		},
		{
			name: "no package marker",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("no package marker for dependency nan"),
			expected: 4,
		},
		{
			name: "module not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unable to find required module nan referenced in autogypi.json"),
			expected: 5,
		},
		{
			name: "write failure",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write 1 file(s)"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeForError(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("something broke")
	assert.Equal(t, "something broke", errorMessage(err))
	assert.Equal(t, assert.AnError.Error(), errorMessage(assert.AnError))
}
