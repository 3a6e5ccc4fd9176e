package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmcampos/biblioteca/internal/model"
)

func init() {
	rootCmd.AddCommand(searchCmd, showCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by title, author, or category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		books, err := c.SearchBooks(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Printf("No books found matching %q.\n", query)
			return nil
		}

		printBookTable(books)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show a book's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		book, err := c.GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", book.Title)
		fmt.Printf("  Author:    %s\n", book.Author)
		fmt.Printf("  Category:  %s\n", book.Category)
		fmt.Printf("  ISBN:      %s\n", book.ISBN)
		fmt.Printf("  Copies:    %d of %d available\n", book.AvailableCopies, book.TotalCopies)
		if book.Description != "" {
			fmt.Printf("  %s\n", book.Description)
		}
		return nil
	},
}

func printBookTable(books []model.Book) {
	fmt.Printf("%-5s %-35s %-25s %-20s %s\n", "ID", "Title", "Author", "Category", "Available")
	fmt.Println(strings.Repeat("-", 100))
	for _, b := range books {
		available := "No"
		if b.Available {
			available = fmt.Sprintf("Yes (%d/%d)", b.AvailableCopies, b.TotalCopies)
		}
		fmt.Printf("%-5s %-35s %-25s %-20s %s\n",
			b.ID,
			truncate(b.Title, 35),
			truncate(b.Author, 25),
			truncate(b.Category, 20),
			available)
	}
}
