package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vivaneiona/blankfill"
)

// valueFlags are shared by fill and explain.
type valueFlags struct {
	config     string
	a          blankfill.FieldAssignment
	lenient    bool
	maxBack    int
	maxForward int
	format     string
}

func (v *valueFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&v.config, "config", "c", "", "YAML config with vocabulary and values")
	f.StringVar(&v.a.StudentName, "name", "", "student full name")
	f.StringVar(&v.a.Course, "course", "", "course number")
	f.StringVar(&v.a.Group, "group", "", "group code")
	f.StringVar(&v.a.DateFrom, "from", "", "internship start date")
	f.StringVar(&v.a.DateTo, "to", "", "internship end date")
	f.StringVar(&v.a.Direction, "direction", "", "direction code to keep")
	f.StringVar(&v.a.PracticeType, "practice-type", "", "practice type to keep")
	f.BoolVar(&v.lenient, "lenient", false, "recover from malformed XML")
	f.IntVar(&v.maxBack, "max-back", 0, "max blanks collected before the name caption (0 = default)")
	f.IntVar(&v.maxForward, "max-forward", 0, "max runs scanned after an anchor (0 = unbounded)")
	f.StringVar(&v.format, "report", "text", "report format (text, json)")
}

// resolve merges the config file with explicitly set flags; flags win.
func (v *valueFlags) resolve(cmd *cobra.Command) (*blankfill.Config, blankfill.FieldAssignment, []func(*blankfill.Options), error) {
	cfg := &blankfill.Config{}
	if v.config != "" {
		loaded, err := blankfill.LoadConfig(v.config)
		if err != nil {
			return nil, blankfill.FieldAssignment{}, nil, err
		}
		cfg = loaded
	}

	a := cfg.Assignment
	overrides := map[string]*string{
		"name":          &a.StudentName,
		"course":        &a.Course,
		"group":         &a.Group,
		"from":          &a.DateFrom,
		"to":            &a.DateTo,
		"direction":     &a.Direction,
		"practice-type": &a.PracticeType,
	}
	flagValues := map[string]string{
		"name":          v.a.StudentName,
		"course":        v.a.Course,
		"group":         v.a.Group,
		"from":          v.a.DateFrom,
		"to":            v.a.DateTo,
		"direction":     v.a.Direction,
		"practice-type": v.a.PracticeType,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst = flagValues[name]
		}
	}
	if err := a.Validate(cfg.Vocabulary); err != nil {
		return nil, blankfill.FieldAssignment{}, nil, err
	}

	opts := cfg.Options()
	if v.lenient {
		opts = append(opts, blankfill.WithLenient())
	}
	if v.maxBack > 0 {
		opts = append(opts, blankfill.WithMaxBack(v.maxBack))
	}
	if v.maxForward > 0 {
		opts = append(opts, blankfill.WithMaxForward(v.maxForward))
	}
	return cfg, a, opts, nil
}

func printReport(cmd *cobra.Command, rep *blankfill.Report, format string) error {
	out, err := rep.Format(blankfill.FormatType(format))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func newFillCmd() *cobra.Command {
	var v valueFlags
	cmd := &cobra.Command{
		Use:   "fill <input.docx> <output.docx>",
		Short: "Fill the blanks of a form and write a new container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, opts, err := v.resolve(cmd)
			if err != nil {
				return err
			}
			rep, err := blankfill.New(nil).FillArchive(cmd.Context(), args[0], args[1], a, opts...)
			if err != nil {
				return err
			}
			slog.Info("Form written", "output", args[1], "filled", rep.Filled())
			return printReport(cmd, rep, v.format)
		},
	}
	v.register(cmd)
	return cmd
}

func newExplainCmd() *cobra.Command {
	var v valueFlags
	cmd := &cobra.Command{
		Use:   "explain <input.docx>",
		Short: "Report what fill would do without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, a, opts, err := v.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := blankfill.ReadDocumentPart(args[0])
			if err != nil {
				return err
			}
			doc, err := blankfill.ParseDocument(data, cfg.Lenient || v.lenient)
			if err != nil {
				return err
			}
			rep, err := blankfill.New(nil).DryRun(cmd.Context(), doc, a, opts...)
			if err != nil {
				return err
			}
			return printReport(cmd, rep, v.format)
		},
	}
	v.register(cmd)
	return cmd
}

func newFillDirCmd() *cobra.Command {
	var v valueFlags
	cmd := &cobra.Command{
		Use:   "fill-dir <dir>",
		Short: "Fill the body part of an unpacked container in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, opts, err := v.resolve(cmd)
			if err != nil {
				return err
			}
			rep, err := blankfill.New(nil).FillDir(cmd.Context(), args[0], a, opts...)
			if err != nil {
				return err
			}
			return printReport(cmd, rep, v.format)
		},
	}
	v.register(cmd)
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		config string
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Fill every job listed in a config file concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := blankfill.LoadConfig(config)
			if err != nil {
				return err
			}
			reports, err := blankfill.New(nil).FillBatch(cmd.Context(), cfg.Jobs, cfg.Options()...)
			if err != nil {
				return err
			}
			for i, rep := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.Jobs[i].Output)
				if err := printReport(cmd, rep, format); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "", "YAML config with a jobs list")
	cmd.Flags().StringVar(&format, "report", "text", "report format (text, json)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <archive> <dir>",
		Short: "Extract a container into a directory, replacing its contents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return blankfill.Unpack(args[0], args[1])
		},
	}
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <dir> <archive>",
		Short: "Compress a directory tree back into a container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return blankfill.Pack(args[0], args[1])
		},
	}
}

func registerCommands(root *cobra.Command) {
	root.AddCommand(newFillCmd(), newFillDirCmd(), newExplainCmd(), newBatchCmd(), newUnpackCmd(), newPackCmd())
}
