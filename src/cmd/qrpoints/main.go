package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackyeh168/qr_points/src/internal/app"
	"github.com/jackyeh168/qr_points/src/internal/config"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "qrpoints",
		Usage:   "QR code 掃描集點服務",
		Version: app.BuildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "設定檔路徑（預設依序尋找 config.yaml、config/config.yaml）",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "啟動 HTTP 服務",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "建立或更新資料表",
				Action: migrate,
			},
			{
				Name:  "reconcile",
				Usage: "核對使用者餘額與帳本，有差異時以非零狀態結束",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "只核對指定使用者",
					},
				},
				Action: reconcile,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("qrpoints: %v", err)
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("載入設定失敗: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("初始化失敗: %w", err)
	}
	return application.Run(ctx)
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	db, err := app.OpenDatabase(cfg, app.NewLogger(cfg))
	if err != nil {
		return err
	}
	return persistence.Close(db)
}

func reconcile(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	db, err := app.OpenDatabase(cfg, app.NewLogger(cfg))
	if err != nil {
		return err
	}
	defer persistence.Close(db)

	report, err := app.Reconcile(ctx, db, cmd.String("email"))
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "checked %d user(s), %d mismatch(es)\n", len(report.Entries), len(report.Mismatches))
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "%s\tstored=%d\tscans=%d\tadjustments=%d\tdrift=%d\n",
			m.Email, m.StoredPoints, m.ScanTotal, m.AdjustmentTotal, m.Drift())
	}

	if !report.Consistent() {
		return cli.Exit("ledger mismatch detected", 1)
	}
	return nil
}
