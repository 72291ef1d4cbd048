package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"newsadmin/internal/client"
	"newsadmin/internal/config"
	"newsadmin/internal/console"
	"newsadmin/internal/logger"
	"newsadmin/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConsoleConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка загрузки конфига:", err)
		os.Exit(1)
	}
	// Терминал занят таблицей, поэтому лог только в файл.
	logger.InitLogger(logger.Options{
		Level:    cfg.LogLevel,
		Dir:      cfg.LogDir,
		FileName: "console.log",
	})
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		logger.Log.Error("Команда завершилась ошибкой", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.ConsoleConfig) *cobra.Command {
	root := &cobra.Command{
		Use:   "newsadmin-console",
		Short: "Terminal admin for news posts",
		Long: `Terminal admin for news posts

	Example: ./newsadmin-console console --api http://localhost:8080`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}
	root.PersistentFlags().StringVar(&cfg.APIURL, "api", cfg.APIURL, "API base URL (API_URL)")
	root.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "admin access token (ADMIN_TOKEN)")

	root.AddCommand(
		newListCmd(cfg),
		newDeleteCmd(cfg),
		newConsoleCmd(cfg),
		newTokenCmd(cfg),
	)
	return root
}

type wiring struct {
	store   *console.Store
	actions *console.Actions
}

func wire(cfg *config.ConsoleConfig) wiring {
	api := client.New(cfg.APIURL, &http.Client{Timeout: cfg.RequestTimeout})
	store := console.NewStore()
	return wiring{store: store, actions: console.NewActions(api, store, cfg.RequestTimeout)}
}

func newListCmd(cfg *config.ConsoleConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of news posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			if page < 1 {
				return fmt.Errorf("invalid page: %d, pages start from 1", page)
			}
			w := wire(cfg)
			w.store.SetCurrentPage(page)
			err := w.actions.FetchPage(cmd.Context(), page)
			console.Render(cmd.OutOrStdout(), w.store.Snapshot())
			return err
		},
	}
	cmd.Flags().IntP("page", "p", 1, "page number, starting from 1")
	return cmd
}

func newDeleteCmd(cfg *config.ConsoleConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a news post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 1 {
				return fmt.Errorf("invalid id: %s", args[0])
			}

			var failed error
			wire(cfg).actions.DeleteRecord(cmd.Context(), cfg.Token, id,
				func(payload json.RawMessage) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", console.MsgDeleteSuccess, payload)
				},
				func(err error) {
					fmt.Fprintln(cmd.ErrOrStderr(), console.MsgDeleteFailed)
					failed = err
				},
			)
			return failed
		},
	}
}

func newConsoleCmd(cfg *config.ConsoleConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive paginated list",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := wire(cfg)
			caps := console.NewCapabilities(w.actions,
				func(msg string) { fmt.Fprintln(out, msg) },
				console.TerminalTitle(out, "newsadmin"),
			)
			view := console.NewView(caps, w.store, cfg.Token)
			return console.NewREPL(view, w.store, cmd.InOrStdin(), out).Run(cmd.Context())
		},
	}
}

func newTokenCmd(cfg *config.ConsoleConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is empty")
			}
			userID, _ := cmd.Flags().GetInt("user-id")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			token, err := utils.GenerateToken(cfg.JWTSecret, userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int("user-id", 1, "user_id claim")
	cmd.Flags().String("role", "admin", "role claim")
	cmd.Flags().Duration("ttl", 15*time.Minute, "token lifetime")
	return cmd
}
