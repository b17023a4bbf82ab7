package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"autogypi/internal/core"
	"autogypi/internal/shared"
	"autogypi/internal/types"
)

// Generate writes auto.gypi and auto-top.gypi for the configuration in
// req, after applying the requested additions. Failing to write one file
// does not stop the others; the failures are reported together.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	configPath := strings.TrimSpace(req.ConfigPath)
	if configPath == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config path is required")
	}
	configPath = filepath.Clean(configPath)
	configDir := filepath.Dir(configPath)
	rootDir := strings.TrimSpace(req.RootDir)
	if rootDir == "" {
		rootDir = configDir
	}

	config, err := s.loadRootConfig(ctx, configPath)
	if err != nil {
		return GenerateResult{}, err
	}

	outputPath := req.OutputPath
	if outputPath != "" {
		config.Output = core.RelativePath(configDir, outputPath)
	} else if strings.TrimSpace(config.Output) != "" {
		outputPath = core.ResolvePath(configDir, config.Output)
	} else {
		outputPath = filepath.Join(rootDir, types.DefaultOutputName)
	}
	outputTopPath := req.OutputTopPath
	if outputTopPath != "" {
		config.OutputTop = core.RelativePath(configDir, outputTopPath)
	} else if strings.TrimSpace(config.OutputTop) != "" {
		outputTopPath = core.ResolvePath(configDir, config.OutputTop)
	} else {
		outputTopPath = filepath.Join(rootDir, types.DefaultOutputTopName)
	}
	if req.NoOutputTop {
		outputTopPath = ""
	}

	if len(req.Packages) > 0 {
		config.Dependencies = shared.ConcatUnique(config.Dependencies, req.Packages)
	}
	if len(req.IncludeDirs) > 0 {
		dirs := make([]string, 0, len(req.IncludeDirs))
		for _, dir := range req.IncludeDirs {
			if filepath.IsAbs(dir) {
				dir = core.RelativePath(configDir, dir)
			}
			dirs = append(dirs, dir)
		}
		config.IncludeDirs = shared.ConcatUnique(config.IncludeDirs, dirs)
	}

	var writeErrs []error
	report := func(kind string, path string, err error) {
		log.Ctx(ctx).Error().Err(err).Str("path", path).Msgf("could not write %s", kind)
		writeErrs = append(writeErrs, err)
	}

	if req.Save || req.InitGyp != "" {
		if err := s.Configs.SaveConfig(configPath, config); err != nil {
			report("config", configPath, err)
		}
	}

	result := GenerateResult{OutputPath: outputPath, OutputTopPath: outputTopPath}
	if req.InitGyp != "" {
		gyp := core.BuildBindingGyp(req.InitGyp, outputPath, outputTopPath, req.Sources, req.TargetName)
		if err := s.Output.WriteBinding(req.InitGyp, gyp); err != nil {
			report("gyp template", req.InitGyp, err)
		} else {
			result.BindingPath = req.InitGyp
		}
	}

	engine := core.NewMergeEngine(s.Configs, s.FS)
	engine.Jobs = req.Jobs
	generated, err := engine.Generate(ctx, core.GenerateOptions{
		ConfigPath:    configPath,
		Config:        config,
		OutputPath:    outputPath,
		OutputTopPath: outputTopPath,
		OmitTop:       req.NoOutputTop,
		Resolver:      core.NewDefaultResolverContext(s.Resolver, s.workingDir(configDir)),
	})
	if err != nil {
		return GenerateResult{}, err
	}
	result.Packages = generated.Packages

	if err := s.Output.WriteGypi(generated.OutputPath, generated.Gypi, generated.Header); err != nil {
		report("gypi", generated.OutputPath, err)
	}
	if generated.OutputTopPath != "" {
		if err := s.Output.WriteGypi(generated.OutputTopPath, generated.GypiTop, generated.HeaderTop); err != nil {
			report("gypi", generated.OutputTopPath, err)
		}
	}
	if len(writeErrs) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %d file(s)", len(writeErrs))).
			WithCause(errors.Join(writeErrs...))
	}
	log.Ctx(ctx).Debug().Str("output", outputPath).Int("packages", len(result.Packages)).Msg("gypi files generated")
	return result, nil
}

// loadRootConfig treats a missing root configuration as empty so that
// dependencies can be given on the command line alone.
func (s Service) loadRootConfig(ctx context.Context, configPath string) (types.Config, error) {
	if !s.FS.Exists(configPath) {
		log.Ctx(ctx).Debug().Str("config", configPath).Msg("config file not found, starting empty")
		return types.Config{}, nil
	}
	return s.Configs.LoadConfig(configPath)
}

func (s Service) workingDir(fallback string) string {
	if s.Getwd == nil {
		return fallback
	}
	dir, err := s.Getwd()
	if err != nil {
		return fallback
	}
	return dir
}
