package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autogypi/internal/app"
	"autogypi/internal/shared"
	"autogypi/internal/types"
)

type generateOptions struct {
	Root        string
	Config      string
	Output      string
	OutputTop   string
	NoOutputTop bool
	Packages    []string
	IncludeDirs []string
	Save        bool
	InitGyp     string
	Sources     []string
	TargetName  string
	Jobs        int
}

func bindGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.Root, "root", "r", "", "Root path for config files, default is shell working directory")
	flags.StringVarP(&opts.Config, "config", "c", "", "Config file, default "+types.ConfigFileName)
	flags.StringVarP(&opts.Output, "output", "o", "", "Per-target gypi file to create, default "+types.DefaultOutputName)
	flags.StringVarP(&opts.OutputTop, "output-top", "t", "", "Top-level gypi file to create, default "+types.DefaultOutputTopName)
	flags.BoolVarP(&opts.NoOutputTop, "no-output-top", "T", false, "Omit top-level gypi file")
	flags.StringArrayVarP(&opts.Packages, "package", "p", nil, "Add dependency on another npm package")
	flags.StringArrayVarP(&opts.IncludeDirs, "include-dir", "I", nil, "Add include directory for header files")
	flags.BoolVar(&opts.Save, "save", false, "Save changes to config file")
	flags.StringVar(&opts.InitGyp, "init-gyp", "", "Create gyp file (default "+types.DefaultBindingName+", implies --save)")
	flags.Lookup("init-gyp").NoOptDefVal = types.DefaultBindingName
	flags.StringArrayVarP(&opts.Sources, "source", "s", nil, "Add C or C++ source file to the created gyp file")
	flags.StringVar(&opts.TargetName, "target-name", types.DefaultTargetName, "Target name in the created gyp file")
	flags.IntVarP(&opts.Jobs, "jobs", "j", 1, "Dependency configurations merged concurrently")

	_ = viper.BindPFlag("root", flags.Lookup("root"))
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("output_top", flags.Lookup("output-top"))
	_ = viper.BindPFlag("no_output_top", flags.Lookup("no-output-top"))
	_ = viper.BindPFlag("packages", flags.Lookup("package"))
	_ = viper.BindPFlag("include_dirs", flags.Lookup("include-dir"))
	_ = viper.BindPFlag("save", flags.Lookup("save"))
	_ = viper.BindPFlag("sources", flags.Lookup("source"))
	_ = viper.BindPFlag("target_name", flags.Lookup("target-name"))
	_ = viper.BindPFlag("jobs", flags.Lookup("jobs"))
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read working directory").
			WithCause(err)
	}
	req := buildGenerateRequest(cwd, generateOptions{
		Root:        resolveString(cmd, opts.Root, "root", "root"),
		Config:      resolveString(cmd, opts.Config, "config", "config"),
		Output:      resolveString(cmd, opts.Output, "output", "output"),
		OutputTop:   resolveString(cmd, opts.OutputTop, "output_top", "output-top"),
		NoOutputTop: resolveBool(cmd, opts.NoOutputTop, "no_output_top", "no-output-top"),
		Packages:    resolveStrings(cmd, opts.Packages, "packages", "package"),
		IncludeDirs: resolveStrings(cmd, opts.IncludeDirs, "include_dirs", "include-dir"),
		Save:        resolveBool(cmd, opts.Save, "save", "save"),
		InitGyp:     opts.InitGyp,
		Sources:     resolveStrings(cmd, opts.Sources, "sources", "source"),
		TargetName:  resolveString(cmd, opts.TargetName, "target_name", "target-name"),
		Jobs:        resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
	})

	service := newAppService()
	result, err := service.Generate(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Msg("could not generate gypi files")
		return err
	}
	event := log.Ctx(ctx).Info().Str("output", result.OutputPath)
	if result.OutputTopPath != "" {
		event = event.Str("output_top", result.OutputTopPath)
	}
	event.Int("packages", len(result.Packages)).Msg("generated")
	return nil
}

// buildGenerateRequest turns command line paths into absolute ones.
// Explicit paths are relative to the working directory, defaults to the
// root directory, which is the config file's directory unless --root is
// given.
func buildGenerateRequest(cwd string, opts generateOptions) app.GenerateRequest {
	root := cwd
	if opts.Root != "" {
		root = absPath(cwd, opts.Root)
	}
	configPath := filepath.Join(root, types.ConfigFileName)
	if opts.Config != "" {
		configPath = absPath(cwd, opts.Config)
	}
	if opts.Root == "" {
		root = filepath.Dir(configPath)
	}

	req := app.GenerateRequest{
		ConfigPath:  configPath,
		RootDir:     root,
		NoOutputTop: opts.NoOutputTop,
		Packages:    opts.Packages,
		Save:        opts.Save,
		TargetName:  opts.TargetName,
		Jobs:        opts.Jobs,
	}
	if opts.Output != "" {
		req.OutputPath = absPath(cwd, opts.Output)
	}
	if opts.OutputTop != "" {
		req.OutputTopPath = absPath(cwd, opts.OutputTop)
	}
	for _, dir := range opts.IncludeDirs {
		req.IncludeDirs = append(req.IncludeDirs, absPath(cwd, dir))
	}
	if opts.InitGyp != "" {
		req.InitGyp = absPath(cwd, opts.InitGyp)
		for _, source := range opts.Sources {
			req.Sources = append(req.Sources, absPath(cwd, source))
		}
	}
	return req
}

func absPath(cwd string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

func newAppService() app.Service {
	return app.NewService(shared.SplitPathList(viper.GetString("node_path")))
}
