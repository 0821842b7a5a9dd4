package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	ingestOrganization string
	ingestWatch        bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a document or directory into the knowledge base",
	Long: `Extracts text from the given file (or every supported file in a
directory), chunks it, embeds the chunks, and stores them locally.

Document type, geographic focus, and topic are inferred from the filename,
e.g. baltic_seagrass_sustainability_report.txt. Re-ingesting a filename
replaces the previous version.

With --watch, keeps running and re-ingests files in the directory as they
are created or modified, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOrganization, "organization", "o", "", "organization the documents belong to")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch the directory and ingest changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(false)
	if err != nil {
		return err
	}
	defer p.close()

	if ingestWatch {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
		err := p.ingester.Watch(ctx, args[0], ingestOrganization)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	report, err := p.ingester.IngestPath(context.Background(), args[0], ingestOrganization)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	for _, doc := range report.Documents {
		if !doc.Ok() {
			cmd.Printf("  FAIL %s: %s\n", doc.Filename, doc.Error)
			continue
		}
		status := "added"
		if doc.Replaced {
			status = "replaced"
		}
		cmd.Printf("  ok   %s: %d chunks (%s)\n", doc.Filename, doc.ChunkCount, status)
	}
	cmd.Printf("\nIngested %d document(s), %d failed.\n", report.Succeeded, report.Failed)

	if report.Failed > 0 && report.Succeeded == 0 {
		return errors.New("all documents failed to ingest")
	}
	return nil
}
