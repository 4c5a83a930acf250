package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pdf-rag/internal/helper"
	"pdf-rag/internal/session"
)

var (
	askFiles []string
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask --file doc.pdf [--file other.pdf] question...",
	Short: "Answer one question about PDF files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askFiles, "file", "f", nil, "PDF file to index (repeatable)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON")
	_ = askCmd.MarkFlagRequired("file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	uploads, err := helper.LoadUploads(askFiles)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	sess := session.New("cli", pipeline)
	if _, err := sess.Process(ctx, uploads); err != nil {
		return err
	}

	answer, err := sess.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		return helper.PrettyPrint(out, answer)
	}
	fmt.Fprintf(out, "%s\n\n%s\n", answer.Text, answer.PageNotice())
	return nil
}
