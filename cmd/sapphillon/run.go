package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	v1 "github.com/Walkmana-25/Saphillon-Core/api/v1"
	"github.com/Walkmana-25/Saphillon-Core/config"
	"github.com/Walkmana-25/Saphillon-Core/plugin"
	"github.com/Walkmana-25/Saphillon-Core/plugin/builtin/jsonutil"
	"github.com/Walkmana-25/Saphillon-Core/plugin/builtin/web"
	"github.com/Walkmana-25/Saphillon-Core/runtime"
	"github.com/Walkmana-25/Saphillon-Core/workflow"
)

var runPassThrough bool

var runCmd = &cobra.Command{
	Use:   "run <script-file>",
	Short: "Execute one workflow script and print its result",
	Long: `Execute a script file once with the builtin plugin packages bound.

By default the run goes through the workflow controller: printed output is
captured and reported as part of the result record. With --pass-through the
script writes directly to the real stdout/stderr instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		webPkg, err := web.New(cfg.Web)
		if err != nil {
			return fmt.Errorf("initialize builtin plugins: %w", err)
		}
		pkgs := []*plugin.Package{webPkg, jsonutil.New()}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}

		if runPassThrough {
			var bindings []runtime.Binding
			for _, p := range pkgs {
				bindings = append(bindings, p.Bindings()...)
			}
			state := runtime.NewState(uuid.New().String(), false)
			if err := runtime.Run(cmd.Context(), string(src), bindings, state); err != nil {
				return fmt.Errorf("script failed: %w", err)
			}
			return nil
		}

		wf := workflow.New(uuid.New().String(), string(src), pkgs, 1)
		res := wf.Run(cmd.Context())
		logger.Info("run finished",
			"result_id", res.ID,
			"revision", res.WorkflowResultRevision,
			"exit_code", res.ExitCode)

		fmt.Print(res.Result)
		if res.ResultType == v1.WorkflowResultFailure {
			return fmt.Errorf("%s", res.Description)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPassThrough, "pass-through", false,
		"write printed output to the real stdout/stderr instead of capturing it")
}
