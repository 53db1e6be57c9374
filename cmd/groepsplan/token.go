package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for a teacher",
	Long:  "Issue a signed bearer token for the protected generation and document routes.",
	RunE:  runToken,
}

var tokenTeacher string

func init() {
	tokenCmd.Flags().StringVar(&tokenTeacher, "teacher", "", "Teacher id (UUID); a new one is generated when empty")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jwtCfg, err := cfg.JWT.Require()
	if err != nil {
		return err
	}

	teacherID := uuid.New()
	if tokenTeacher != "" {
		if teacherID, err = uuid.Parse(tokenTeacher); err != nil {
			return fmt.Errorf("invalid teacher id: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(teacherID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Teacher: %s (valid %s)\n", teacherID, jwtCfg.Expiration())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
