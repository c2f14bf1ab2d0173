package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var blocksOutput string

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Manage stored block sets",
	Long:  `List, show, print or delete documents whose blocks have been saved.`,
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runBlocksList,
}

var blocksShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show the blocks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksShow,
}

var blocksTextCmd = &cobra.Command{
	Use:   "text [doc-id]",
	Short: "Print the plain text of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksText,
}

var blocksDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete the blocks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksDelete,
}

func init() {
	blocksCmd.PersistentFlags().StringVarP(&blocksOutput, "output", "o", outputText, "output format: text, json or yaml")

	blocksCmd.AddCommand(blocksListCmd)
	blocksCmd.AddCommand(blocksShowCmd)
	blocksCmd.AddCommand(blocksTextCmd)
	blocksCmd.AddCommand(blocksDeleteCmd)
	rootCmd.AddCommand(blocksCmd)
}

func runBlocksList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := validateOutput(blocksOutput); err != nil {
		return err
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if blocksOutput != outputText {
		return writeStructured(cmd, blocksOutput, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	cmd.Printf("%-38s %7s %6s\n", "ID", "BLOCKS", "PAGES")
	for _, d := range docs {
		cmd.Printf("%-38s %7d %6d\n", d.ID, d.Blocks, d.Pages)
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runBlocksShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := validateOutput(blocksOutput); err != nil {
		return err
	}

	blocks, err := documentService.Blocks(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}

	if blocksOutput != outputText {
		return writeStructured(cmd, blocksOutput, blocks)
	}
	printBlocks(cmd, blocks, "")
	return nil
}

func runBlocksText(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text, err := documentService.Text(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get text: %w", err)
	}
	cmd.Println(text)
	return nil
}

func runBlocksDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
