package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/imobflow/crm-api/internal/infra/database"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o schema do ImobFlow CRM no Postgres",
	}

	rootCmd.AddCommand(upCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Executa migrations/schema.sql no banco do DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := os.Getenv("DATABASE_URL")
			if dsn == "" {
				return fmt.Errorf("DATABASE_URL não definido no ambiente nem no .env")
			}

			schema, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("falha ao ler schema: %w", err)
			}

			db, err := database.NewDBConnection(dsn)
			if err != nil {
				return fmt.Errorf("falha ao conectar no banco: %w", err)
			}
			defer db.Close()

			if _, err := db.Exec(string(schema)); err != nil {
				return fmt.Errorf("falha ao aplicar schema: %w", err)
			}

			fmt.Println("✅ Schema aplicado com sucesso")
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "migrations/schema.sql", "caminho do arquivo de schema")
	return cmd
}
