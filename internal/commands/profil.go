package commands

import (
	"errors"
	"fmt"
	"io"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

type profilOptions struct {
	role     string
	nama     string
	username string
	password string
	email    string
}

func (o *profilOptions) bind(cmd *cobra.Command, defaultUsername string) {
	cmd.Flags().StringVar(&o.role, "role", "admin", "role name, created when missing")
	cmd.Flags().StringVar(&o.nama, "nama", "Administrator", "display name")
	cmd.Flags().StringVar(&o.username, "username", defaultUsername, "login username")
	cmd.Flags().StringVar(&o.password, "password", "", "login password (required, min 8 chars)")
	cmd.Flags().StringVar(&o.email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("password")
}

func (o *profilOptions) request(roleID string) models.ProfilRequest {
	req := models.ProfilRequest{
		RoleID:   roleID,
		Nama:     o.nama,
		Username: o.username,
		Password: &o.password,
	}
	if o.email != "" {
		req.Email = &o.email
	}
	return req
}

func newSeedCommand() *cobra.Command {
	opts := &profilOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default role and administrator profil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			return runSeed(cmd.OutOrStdout(), newProfilService(db, cfg), opts, true)
		},
	}
	opts.bind(cmd, "admin")

	return cmd
}

func newCreateProfilCommand() *cobra.Command {
	opts := &profilOptions{}

	cmd := &cobra.Command{
		Use:   "create-profil",
		Short: "Create a profil that can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			return runSeed(cmd.OutOrStdout(), newProfilService(db, cfg), opts, false)
		},
	}
	opts.bind(cmd, "")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newProfilService(db *sqlx.DB, cfg *config.Config) *service.ProfilService {
	return service.NewProfilService(
		repository.NewRoleRepository(db),
		repository.NewProfilRepository(db),
		cfg,
		utils.GetLogger(),
	)
}

// runSeed ensures the role exists and creates the profil. With skipExisting
// a taken username is reported instead of failing, so seeding can be rerun.
func runSeed(out io.Writer, profils *service.ProfilService, opts *profilOptions, skipExisting bool) error {
	role, created, err := profils.EnsureRole(opts.role)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Created role %q (%s)\n", role.Role, role.ID)
	}

	profil, err := profils.Create(opts.request(role.ID))
	if err != nil {
		var verr *service.ValidationError
		if skipExisting && errors.As(err, &verr) && len(verr.Fields) == 1 && verr.Fields["username"] != "" {
			fmt.Fprintf(out, "Profil %q already exists\n", opts.username)
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Created profil %q (%s) with role %q\n", profil.Username, profil.ID, role.Role)
	return nil
}
