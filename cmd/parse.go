package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/resume"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract facts from a resume and print them as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().String("hh-resume", "", "title of your hh.ru resume to read instead of a file")
}

func parse(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := bootstrap()

	path, hhTitle := sourceArgs(cmd, args, logger)

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building screening service", zap.Error(err))
	}

	sess, err := ingest(ctx, svc, config, logger, path, hhTitle)
	if err != nil {
		fatalIngest(logger, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		SessionID string        `json:"session_id"`
		Facts     *resume.Facts `json:"facts"`
	}{sess.ID, sess.Facts}); err != nil {
		logger.Fatal("printing facts", zap.Error(err))
	}
}

// sourceArgs returns the file argument or the hh.ru resume title; exactly one is required.
func sourceArgs(cmd *cobra.Command, args []string, logger *zap.Logger) (string, string) {
	hhTitle, _ := cmd.Flags().GetString("hh-resume")

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	if (path == "") == (hhTitle == "") {
		logger.Fatal("exactly one resume source is required",
			zap.String("hint", fmt.Sprintf("pass a file (%v) or --hh-resume <title>", document.Supported())),
		)
	}

	return path, hhTitle
}

func fatalIngest(logger *zap.Logger, err error) {
	var (
		emptyErr       *resume.EmptyDocumentError
		unsupportedErr *document.UnsupportedFormatError
		decodeErr      *document.DecodeError
	)

	switch {
	case errors.As(err, &emptyErr):
		logger.Fatal("resume has no text", zap.String("source", emptyErr.Source))
	case errors.As(err, &unsupportedErr):
		logger.Fatal("unsupported resume format",
			zap.String("path", unsupportedErr.Path),
			zap.Strings("supported", document.Supported()),
		)
	case errors.As(err, &decodeErr):
		logger.Fatal("could not read resume", zap.String("path", decodeErr.Path), zap.Error(decodeErr.Cause))
	default:
		logger.Fatal("ingesting resume", zap.Error(err))
	}
}
