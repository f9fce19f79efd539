package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/drakos74/free-fit/internal/config"
	"github.com/drakos74/free-fit/internal/math/poly"
	"github.com/drakos74/free-fit/internal/metrics"
	"github.com/drakos74/free-fit/internal/sample"
	"github.com/drakos74/free-fit/internal/server"
	"github.com/drakos74/free-fit/internal/service"
	"github.com/drakos74/free-fit/internal/storage"
	"github.com/drakos74/free-fit/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

const shard = "fit"

// app holds the state shared by the commands.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
	svc        *service.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "free-fit",
		Short:         "Fits multivariate polynomials to sampled data by least squares",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config")

	rootCmd.AddCommand(
		a.exponentsCmd(),
		a.templateCmd(),
		a.fitCmd(),
		a.evalCmd(),
		a.renderCmd(),
		a.configCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	zerolog.SetGlobalLevel(cfg.Level())
	a.cfg = cfg

	store, err := newStorage(cfg)
	if err != nil {
		return err
	}
	a.svc = service.New(store, metrics.Observer)
	if cfg.Render.AllTerms {
		a.svc.WithRender(poly.AllTerms())
	}
	return nil
}

func newStorage(cfg config.Config) (storage.Persistence, error) {
	switch cfg.Storage.Type {
	case config.MemoryStorage:
		return json.LocalShard()(shard)
	case config.VoidStorage:
		return storage.VoidShard()(shard)
	default:
		return json.BlobShard(cfg.Storage.Dir, cfg.Storage.Table, cfg.Level() <= zerolog.DebugLevel)(shard)
	}
}

func renderOptions(allTerms bool) []poly.RenderOption {
	if allTerms {
		return []poly.RenderOption{poly.AllTerms()}
	}
	return nil
}

func (a *app) exponentsCmd() *cobra.Command {
	var dimension, degree int
	cmd := &cobra.Command{
		Use:   "exponents",
		Short: "Prints the exponents of the terms of a complete polynomial",
		RunE: func(cmd *cobra.Command, args []string) error {
			ee, err := a.svc.Exponents(dimension, degree)
			if err != nil {
				return err
			}
			for _, e := range ee {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Trim(fmt.Sprint(e), "[]"))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&dimension, "dimension", "n", 1, "number of variables")
	cmd.Flags().IntVarP(&degree, "degree", "d", 1, "polynomial degree")
	return cmd
}

func (a *app) templateCmd() *cobra.Command {
	var (
		dimension, degree int
		allTerms          bool
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Renders a complete polynomial with placeholder coefficients",
		RunE: func(cmd *cobra.Command, args []string) error {
			latex, err := a.svc.Template(dimension, degree, renderOptions(allTerms)...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), latex)
			return nil
		},
	}
	cmd.Flags().IntVarP(&dimension, "dimension", "n", 1, "number of variables")
	cmd.Flags().IntVarP(&degree, "degree", "d", 1, "polynomial degree")
	cmd.Flags().BoolVar(&allTerms, "all-terms", false, "render the terms with zero coefficients too")
	return cmd
}

func (a *app) fitCmd() *cobra.Command {
	var (
		degree         int
		rangeDimension int
		file           string
		save           bool
		allTerms       bool
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fits the samples of a file, one polynomial per target column",
		Long: `Fits the samples of a file, one polynomial per target column.
Each line is a sample, values separated by commas or white space.
The last --range columns are the targets, the rest the variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("degree") {
				degree = a.cfg.Fit.DefaultDegree
			}
			var (
				samples *mat.Dense
				err     error
			)
			if allTerms {
				a.svc.WithRender(poly.AllTerms())
			}
			if file == "-" {
				samples, err = sample.Read(cmd.InOrStdin())
			} else {
				samples, err = sample.ReadFile(file)
			}
			if err != nil {
				return err
			}

			m, err := a.svc.FitMatrix(cmd.Context(), degree, samples, rangeDimension, save)
			if err != nil {
				return err
			}
			for _, latex := range m.LaTeX {
				fmt.Fprintln(cmd.OutOrStdout(), latex)
			}
			if save {
				fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", m.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&degree, "degree", "d", 1, "polynomial degree")
	cmd.Flags().IntVarP(&rangeDimension, "range", "r", 1, "number of target columns")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "samples file, - for stdin")
	cmd.Flags().BoolVar(&save, "save", false, "store the fitted model")
	cmd.Flags().BoolVar(&allTerms, "all-terms", false, "render the terms with zero coefficients too")
	return cmd
}

func (a *app) evalCmd() *cobra.Command {
	var (
		id     string
		values []float64
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluates a stored model",
		RunE: func(cmd *cobra.Command, args []string) error {
			vv, err := a.svc.Evaluate(cmd.Context(), id, values)
			if err != nil {
				return err
			}
			for _, v := range vv {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "model id or id prefix")
	cmd.Flags().Float64SliceVar(&values, "at", nil, "variable values, e.g. 2,1,1")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var (
		id       string
		allTerms bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Renders again the polynomials of a stored model",
		RunE: func(cmd *cobra.Command, args []string) error {
			latex, err := a.svc.Render(cmd.Context(), id, renderOptions(allTerms)...)
			if err != nil {
				return err
			}
			for _, l := range latex {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "model id or id prefix")
	cmd.Flags().BoolVar(&allTerms, "all-terms", false, "render the terms with zero coefficients too")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the http api",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(a.cfg.Server.Name, a.cfg.Server.Port).
				Add(server.Routes(a.svc, a.cfg.Level() <= zerolog.DebugLevel)...).
				Handle("/metrics", metrics.Handler())
			return srv.Run(ctx)
		},
	}
}
