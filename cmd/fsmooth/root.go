package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/fsmooth/internal/autodiff"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/eval"
	"github.com/born-ml/fsmooth/internal/optim"
	"github.com/born-ml/fsmooth/internal/parallel"
	"github.com/born-ml/fsmooth/internal/term"
)

// fileConfig is the layout of the --config file.
type fileConfig struct {
	Engine   egraph.Config   `yaml:"engine"`
	Parallel parallel.Config `yaml:"parallel"`
}

type options struct {
	configPath string
	maxIter    int
	maxNodes   int
	verbose    bool
	at         []float64
}

// load reads the config file, then applies flags the user set explicitly.
func (o *options) load(flags *pflag.FlagSet, logs io.Writer) (fileConfig, error) {
	cfg := fileConfig{Engine: egraph.DefaultConfig(), Parallel: parallel.DefaultConfig()}
	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", o.configPath, err)
		}
	}
	if flags.Changed("max-iter") {
		cfg.Engine.MaxIterations = o.maxIter
	}
	if flags.Changed("max-nodes") {
		cfg.Engine.MaxNodes = o.maxNodes
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	cfg.Engine.Logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: level}))
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "fsmooth",
		Short:         "Symbolic forward-mode differentiation by equality saturation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "YAML file with engine and parallel settings")
	pf.IntVar(&o.maxIter, "max-iter", egraph.DefaultConfig().MaxIterations, "saturation rounds before giving up (0 = unbounded)")
	pf.IntVar(&o.maxNodes, "max-nodes", egraph.DefaultConfig().MaxNodes, "node count that stops saturation")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log every saturation round")

	root.AddCommand(
		newDiffCmd(o),
		newGradCmd(o),
		newJacobianCmd(o),
		newOptimCmd(o),
		newListCmd(),
		newVersionCmd(),
	)
	return root
}

func addAtFlag(cmd *cobra.Command, o *options) {
	cmd.Flags().Float64SliceVar(&o.at, "at", nil, "evaluate the result at this point")
}

func newDiffCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <program>",
		Short: "Print the dual-number lifting of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := lookup(args[0])
			if err != nil {
				return err
			}
			df, err := autodiff.Diff(cmd.Context(), f, cfg.Engine)
			if err != nil {
				return err
			}
			var seed []eval.Value
			if o.at != nil {
				if programs[args[0]].shape != scalarToScalar || len(o.at) != 1 {
					return fmt.Errorf("--at needs one value and a scalar program")
				}
				seed = []eval.Value{eval.Dual(o.at[0], 1)}
			}
			return report(cmd.OutOrStdout(), df, seed)
		},
	}
	addAtFlag(cmd, o)
	return cmd
}

func newGradCmd(o *options) *cobra.Command {
	var opt, all bool
	cmd := &cobra.Command{
		Use:   "grad [program]",
		Short: "Print the gradient of a vector-to-scalar program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if all {
				return gradAll(cmd.Context(), cmd.OutOrStdout(), cfg)
			}
			if len(args) != 1 {
				return fmt.Errorf("grad needs a program or --all")
			}
			f, err := lookup(args[0], vectorToScalar)
			if err != nil {
				return err
			}
			grad := autodiff.Grad
			if opt {
				grad = autodiff.GradOpt
			}
			g, err := grad(cmd.Context(), f, cfg.Engine)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), g, vectorSeed(o.at))
		},
	}
	cmd.Flags().BoolVar(&opt, "opt", true, "simplify during differentiation")
	cmd.Flags().BoolVar(&all, "all", false, "differentiate every vector-to-scalar program concurrently")
	addAtFlag(cmd, o)
	return cmd
}

func gradAll(ctx context.Context, w io.Writer, cfg fileConfig) error {
	var names []string
	for _, name := range programNames() {
		if programs[name].shape == vectorToScalar {
			names = append(names, name)
		}
	}
	fs := make([]*term.Term, len(names))
	for i, name := range names {
		f, err := lookup(name)
		if err != nil {
			return err
		}
		fs[i] = f
	}
	gs, err := autodiff.GradAll(ctx, fs, cfg.Engine, cfg.Parallel)
	if err != nil {
		return err
	}
	for i, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, gs[i])
	}
	return nil
}

func newJacobianCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jacobian <program>",
		Short: "Print the Jacobian of a vector-to-vector program by columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := lookup(args[0], vectorToVector)
			if err != nil {
				return err
			}
			j, err := autodiff.Jacobian(cmd.Context(), f, cfg.Engine)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), j, vectorSeed(o.at))
		},
	}
	addAtFlag(cmd, o)
	return cmd
}

func newOptimCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "optim <program>",
		Short: "Print the simplified form of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := lookup(args[0])
			if err != nil {
				return err
			}
			s, err := optim.Optim(cmd.Context(), f, cfg.Engine)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), s, nil)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in programs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range programNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, programs[name].shape)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fsmooth %s\n", version)
		},
	}
}

func vectorSeed(at []float64) []eval.Value {
	if at == nil {
		return nil
	}
	return []eval.Value{eval.Vector(at)}
}

// report prints t and, when args are given, the value of t applied to them.
func report(w io.Writer, t *term.Term, args []eval.Value) error {
	fmt.Fprintln(w, t)
	if args == nil {
		return nil
	}
	f, err := eval.Eval(t)
	if err != nil {
		return err
	}
	v, err := eval.Apply(f, args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "at %v: %s\n", args[0], v)
	return nil
}
