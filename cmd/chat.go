package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdf-rag/internal/helper"
	"pdf-rag/internal/session"
	"pdf-rag/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat doc.pdf [other.pdf...]",
	Short: "Index PDF files and chat with them in the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	uploads, err := helper.LoadUploads(args)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	sess := session.New("tui", pipeline)
	log.Info().Int("files", len(uploads)).Msg("Processing...")
	if _, err := sess.Process(ctx, uploads); err != nil {
		return err
	}
	info := sess.Info()

	// log lines would corrupt the alternate screen
	zerolog.SetGlobalLevel(zerolog.Disabled)

	m := tui.New(ctx, sess, tui.Summary(info.Documents, info.Result))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
