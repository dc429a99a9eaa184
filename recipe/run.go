package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/state"
)

// Run implements the build subcommand: loads a recipe file, builds all
// selectors and writes "name<separator>selector" lines to the destination
// (STDOUT when no destination is given).
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no recipe file has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	r, err := loadFile(src)
	if err != nil {
		return err
	}

	log.Info("Building selectors", zap.String("recipe", src), zap.Int("count", len(r.Selectors)))
	defer func(start time.Time) {
		log.Info("Build completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	results, buildErr := r.Build(log, env.Cfg.Output.SortNames)

	out := os.Stdout
	if len(dst) > 0 {
		if !env.Overwrite {
			if _, err := os.Stat(dst); err == nil {
				return fmt.Errorf("destination '%s' already exists, use --overwrite to replace it", dst)
			}
		}
		if out, err = os.Create(dst); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
		}
		defer out.Close()
	}

	for _, res := range results {
		if _, err := fmt.Fprintf(out, "%s%s%s\n", res.Name, env.Cfg.Output.NameSeparator, res.Selector); err != nil {
			return fmt.Errorf("unable to write results: %w", err)
		}
	}
	return buildErr
}

// Check implements the check subcommand: loads and dry-builds a recipe
// without producing output, so broken selectors surface in CI.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no recipe file has been specified")
	}

	r, err := loadFile(src)
	if err != nil {
		return err
	}

	results, err := r.Build(log, false)
	if err != nil {
		return err
	}

	log.Info("Recipe is good", zap.String("recipe", src), zap.Int("selectors", len(results)))
	return nil
}

func loadFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe file: %w", err)
	}
	r, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("recipe '%s': %w", path, err)
	}
	return r, nil
}
