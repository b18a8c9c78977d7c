package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TilakCSE/Smart-Library-System/internals/configs"
	database "github.com/TilakCSE/Smart-Library-System/internals/databases"
	seeds "github.com/TilakCSE/Smart-Library-System/internals/seeds"
	bookSeeds "github.com/TilakCSE/Smart-Library-System/internals/seeds/books"
	userSeeds "github.com/TilakCSE/Smart-Library-System/internals/seeds/users"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "import-books",
		Short: "Bulk catalog import and seeding for the Smart Library System",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
			database.ConnectDB()
			if err := database.Migrate(database.DB); err != nil {
				fmt.Fprintf(os.Stderr, "migration error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	var booksFile string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import books and copies from a JSON catalog file",
		Run: func(cmd *cobra.Command, args []string) {
			bookSeeds.SeedBooksFromJSON(database.DB, booksFile)
		},
	}
	importCmd.Flags().StringVarP(&booksFile, "file", "f", "internals/seeds/books/data_books.json", "JSON catalog file")

	var usersFile string
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Import users from a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			userSeeds.SeedUsersFromJSON(database.DB, usersFile)
		},
	}
	usersCmd.Flags().StringVarP(&usersFile, "file", "f", "internals/seeds/users/data_users.json", "JSON users file")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Run every seed file",
		Run: func(cmd *cobra.Command, args []string) {
			seeds.RunAllSeeds(database.DB)
		},
	}

	rootCmd.AddCommand(importCmd, usersCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
