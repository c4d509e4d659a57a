package cmd

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagProfileName  string
	flagProfileEmail string
	flagProfilePhone string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the account profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change name, email or phone; omitted flags keep their values",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var profilePhotoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Upload a profile photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilePhoto,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&flagProfileName, "name", "", "Display name")
	profileUpdateCmd.Flags().StringVarP(&flagProfileEmail, "email", "e", "", "Email")
	profileUpdateCmd.Flags().StringVar(&flagProfilePhone, "phone", "", "Phone number")

	profileCmd.AddCommand(profileUpdateCmd, profilePhotoCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.requireAuth(); err != nil {
		return err
	}
	p, err := s.tracker.FetchProfile(cmd.Context())
	if err != nil {
		return err
	}
	sess := s.tracker.Session()
	photo := p.PhotoURL
	if photo == "" {
		photo = sess.PhotoURL
	}

	orDash := func(v string) string {
		if v == "" {
			return "-"
		}
		return v
	}
	fmt.Println()
	fmt.Printf("  Name:    %s\n", orDash(p.Name))
	fmt.Printf("  Email:   %s\n", orDash(p.Email))
	fmt.Printf("  Phone:   %s\n", orDash(p.Phone))
	fmt.Printf("  Photo:   %s\n", orDash(photo))
	fmt.Printf("  Budget:  %s\n", cli.FormatMoney(s.tracker.Budget().Total))
	fmt.Printf("  User ID: %s\n\n", sess.UserID)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.requireAuth(); err != nil {
		return err
	}
	p, err := s.tracker.FetchProfile(cmd.Context())
	if err != nil {
		return err
	}

	name, email, phone := p.Name, p.Email, p.Phone
	f := cmd.Flags()
	if f.Changed("name") {
		name = flagProfileName
	}
	if f.Changed("email") {
		email = flagProfileEmail
	}
	if f.Changed("phone") {
		phone = flagProfilePhone
	}
	if email == "" {
		email = s.tracker.Session().Email
	}

	if _, err := s.tracker.UpdateProfile(cmd.Context(), name, email, phone); err != nil {
		return err
	}
	fmt.Println("  Profile updated")
	return nil
}

func runProfilePhoto(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.requireAuth(); err != nil {
		return err
	}
	progress("Uploading %s...", args[0])
	url, err := s.tracker.UploadPhoto(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if url == "" {
		fmt.Println("  Photo uploaded")
		return nil
	}
	fmt.Printf("  Photo uploaded: %s\n", url)
	return nil
}
