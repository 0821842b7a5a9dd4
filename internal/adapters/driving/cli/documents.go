package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage ingested documents",
	Long:  `List, inspect, or delete ingested documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet. Run 'oceanus ingest' first.")
		return nil
	}

	cmd.Printf("%d document(s):\n\n", len(docs))
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].Filename)
		cmd.Printf("    ID: %s\n", docs[i].ID)
		if docs[i].Organization != "" {
			cmd.Printf("    Organization: %s\n", docs[i].Organization)
		}
		cmd.Printf("    Tags: type=%s region=%s topic=%s\n",
			docs[i].DocType, docs[i].GeographicFocus, docs[i].Topic)
		cmd.Printf("    Ingested: %s\n", docs[i].IngestedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	doc, err := store.GetDocument(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document not found: %s", args[0])
		}
		return err
	}

	chunks, err := store.GetChunks(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}

	cmd.Printf("%s\n", doc.Filename)
	cmd.Printf("  ID: %s\n", doc.ID)
	cmd.Printf("  Organization: %s\n", doc.Organization)
	cmd.Printf("  Tags: type=%s region=%s topic=%s\n", doc.DocType, doc.GeographicFocus, doc.Topic)
	cmd.Printf("  Size: %d bytes\n", doc.FileSize)
	cmd.Printf("  Chunks: %d\n\n", len(chunks))
	for _, c := range chunks {
		preview := c.Content
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		cmd.Printf("  [%d] tokens %d-%d: %s\n", c.Position, c.StartToken, c.EndToken, preview)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteDocument(context.Background(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document not found: %s", args[0])
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
