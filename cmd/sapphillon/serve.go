package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Walkmana-25/Saphillon-Core/config"
	"github.com/Walkmana-25/Saphillon-Core/plugin/builtin/jsonutil"
	"github.com/Walkmana-25/Saphillon-Core/plugin/builtin/web"
	"github.com/Walkmana-25/Saphillon-Core/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workflow HTTP API",
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

		srv := server.New(logger, webPkg, jsonutil.New())

		g := gin.Default()
		srv.Register(g)

		logger.Info("listening", "addr", cfg.Addr)
		return g.Run(cfg.Addr)
	},
}
