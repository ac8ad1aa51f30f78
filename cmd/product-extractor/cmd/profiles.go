package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/product-extractor/pkg/extract"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

func profilesCmd() *cobra.Command {
	var remote bool

	c := &cobra.Command{
		Use:   "profiles",
		Short: "List site profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var profiles []domain.ProfileInfo
			if remote {
				var err error
				profiles, err = newClient().Profiles(cmd.Context())
				if err != nil {
					return fmt.Errorf("listing profiles: %w", err)
				}
			} else {
				profiles = extract.Profiles()
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), profiles)
			}
			return printProfilesTable(cmd.OutOrStdout(), profiles)
		},
	}

	c.Flags().BoolVar(&remote, "remote", false, "list the profiles known to the API server")

	return c
}
