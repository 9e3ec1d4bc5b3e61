package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/session"
)

var replyCmd = &cobra.Command{
	Use:   "reply <session-id> <message>",
	Short: "Answer one candidate message in a stored session",
	Long: "Answer one candidate message in a stored session. " +
		"Sessions survive between runs only with the file or redis store.",
	Args: cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		reply(args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(replyCmd)
}

func reply(id, message string) {
	ctx := context.Background()
	logger, config := bootstrap()

	if config.Store.Backend == "memory" {
		logger.Warn("memory store keeps no sessions between runs", zap.String("hint", "set store.backend to file or redis"))
	}

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building screening service", zap.Error(err))
	}

	decision, err := svc.Reply(ctx, id, message)
	if errors.Is(err, session.ErrNotFound) {
		logger.Fatal("session not found", zap.String("session_id", id))
	}
	if err != nil {
		logger.Fatal("replying", zap.Error(err))
	}

	fmt.Println(decision.Reply)
}
