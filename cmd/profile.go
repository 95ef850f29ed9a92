package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"careerkit/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage applicant profiles",
	Long: `Manage named applicant profiles: JSON blobs holding the details the
drafting features read their defaults from (name, experience, skills, ...).`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile's JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Create or replace a profile",
	Long: `Create or replace a profile from a JSON file or stdin.

Examples:
  careerkit profile save Default --file profile.json
  cat profile.json | careerkit profile save "Data Science"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSave,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var profileSaveFile string

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	profileSaveCmd.Flags().StringVarP(&profileSaveFile, "file", "f", "", "JSON file to read (default stdin)")
}

// openProfileStore opens the SQLite profile store in the data directory
func openProfileStore() (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(cfg.ProfileDBPath)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	s, err := openProfileStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profiles, err := s.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles (a Default profile is created on first save)")
		return nil
	}
	for _, p := range profiles {
		fmt.Printf("%s  (updated %s)\n", p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	s, err := openProfileStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile, err := s.GetProfile(args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("profile %q not found", args[0])
	}
	if err != nil {
		return err
	}

	var pretty json.RawMessage = profile.Data
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if profileSaveFile != "" {
		data, err = os.ReadFile(profileSaveFile)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read profile data: %w", err)
	}

	s, err := openProfileStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile, err := s.SaveProfile(args[0], json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Saved profile %q\n", profile.Name)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	s, err := openProfileStore()
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.DeleteProfile(args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("profile %q not found", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Printf("Deleted profile %q\n", args[0])
	return nil
}
