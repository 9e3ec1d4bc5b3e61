package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/dialogue"
	"github.com/spigell/resume-screener/internal/screening"
)

const (
	PromptMessage  = "Send a message"
	PromptFacts    = "Show extracted facts"
	PromptSkills   = "Show discussed skills"
	PromptDumpFile = "Dump session to file"
	PromptExit     = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptMessage, PromptFacts, PromptSkills, PromptDumpFile, PromptExit},
}

var chatCmd = &cobra.Command{
	Use:   "chat [file]",
	Short: "Read a resume and start an interactive screening chat",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chat(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("hh-resume", "", "title of your hh.ru resume to read instead of a file")
}

func chat(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := bootstrap()

	path, hhTitle := sourceArgs(cmd, args, logger)

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building screening service", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", resolveVersion()))

	sess, err := ingest(ctx, svc, config, logger, path, hhTitle)
	if err != nil {
		fatalIngest(logger, err)
	}

	fmt.Printf("Hi %s! Thanks for sending your resume.\n", sess.Facts.CandidateName)

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, svc, logger, sess.ID); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, svc *screening.Service, logger *zap.Logger, id string) error {
	switch action {
	case PromptMessage:
		return sendMessage(ctx, svc, id)
	case PromptFacts:
		facts, err := svc.Facts(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, facts)
	case PromptSkills:
		sess, err := svc.Session(ctx, id)
		if err != nil {
			return err
		}
		discussed := dialogue.DiscussedSkills(sess.Facts, sess.Turns)
		logger.Info("discussed skills",
			zap.Strings("discussed", discussed),
			zap.Int("total", len(sess.Facts.Skills)),
		)
		return nil
	case PromptDumpFile:
		filename, err := dumpSession(ctx, svc, id)
		if err != nil {
			return fmt.Errorf("dump session to file: %w", err)
		}
		logger.Info("dumping session to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"), zap.String("session_id", id))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func sendMessage(ctx context.Context, svc *screening.Service, id string) error {
	messagePrompt := promptui.Prompt{
		Label: "You",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("message must not be empty")
			}
			return nil
		},
	}

	message, err := messagePrompt.Run()
	if err != nil {
		return err
	}

	decision, err := svc.Reply(ctx, id, message)
	if err != nil {
		return err
	}

	fmt.Printf("Recruiter: %s\n", decision.Reply)
	return nil
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("format as json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}

func dumpSession(ctx context.Context, svc *screening.Service, id string) (string, error) {
	sess, err := svc.Session(ctx, id)
	if err != nil {
		return "", err
	}

	file, err := os.CreateTemp("", app+"-session-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sess); err != nil {
		return "", err
	}
	return file.Name(), nil
}
