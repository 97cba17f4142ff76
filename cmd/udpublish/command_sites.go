package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sourceplane/udpublish/internal/config"
	"github.com/sourceplane/udpublish/internal/credentials"
	"github.com/sourceplane/udpublish/internal/model"
	"github.com/sourceplane/udpublish/internal/render"
	"github.com/spf13/cobra"
)

var (
	siteURL           string
	siteUser          string
	siteAdmin         bool
	siteTrustAllCerts bool
	sitePasswordStdin bool
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage configured servers",
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Load(sitesFile)
		if err != nil {
			return err
		}
		render.SitesTable(os.Stdout, store.Sites())
		return nil
	},
}

var sitesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add or replace a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addSite(args[0])
	},
}

var sitesRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a site and its stored password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeSite(args[0])
	},
}

var sitesLoginCmd = &cobra.Command{
	Use:   "login NAME",
	Short: "Store the password of a site's user in the OS keyring",
	Long:  "Reads the password from stdin and stores it in the OS keyring.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return loginSite(args[0])
	},
}

func registerSitesCommand(root *cobra.Command) {
	root.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesListCmd, sitesAddCmd, sitesRemoveCmd, sitesLoginCmd)

	sitesAddCmd.Flags().StringVar(&siteURL, "url", "", "Server URL (http or https)")
	sitesAddCmd.Flags().StringVar(&siteUser, "user", "", "User name")
	sitesAddCmd.Flags().BoolVar(&siteAdmin, "admin", false, "The user is an administrator")
	sitesAddCmd.Flags().BoolVar(&siteTrustAllCerts, "trust-all-certs", false, "Skip TLS certificate validation")
	sitesAddCmd.Flags().BoolVar(&sitePasswordStdin, "password-stdin", false, "Read the password from stdin and store it in the keyring")
	sitesAddCmd.MarkFlagRequired("url")
	sitesAddCmd.MarkFlagRequired("user")
}

func addSite(name string) error {
	store, err := config.Load(sitesFile)
	if err != nil {
		return err
	}

	site := model.Site{
		Name:          name,
		URL:           siteURL,
		User:          siteUser,
		AdminUser:     siteAdmin,
		TrustAllCerts: siteTrustAllCerts,
	}
	if err := store.Put(site); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("✓ Site %s saved to %s\n", name, store.Path())

	if sitePasswordStdin {
		return storePassword(site)
	}
	return nil
}

func removeSite(name string) error {
	store, err := config.Load(sitesFile)
	if err != nil {
		return err
	}
	site, err := store.Site(name)
	if err != nil {
		return err
	}
	if err := store.Remove(name); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	if err := credentials.Delete(site.Name, site.User); err != nil {
		return err
	}
	fmt.Printf("✓ Site %s removed\n", name)
	return nil
}

func loginSite(name string) error {
	store, err := config.Load(sitesFile)
	if err != nil {
		return err
	}
	site, err := store.Site(name)
	if err != nil {
		return err
	}
	return storePassword(site)
}

func storePassword(site model.Site) error {
	fmt.Fprintf(os.Stderr, "Password for %s on %s: ", site.User, site.Name)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return fmt.Errorf("%w: empty password", model.ErrInvalidConfig)
	}
	if err := credentials.Store(site.Name, site.User, password); err != nil {
		return err
	}
	fmt.Printf("✓ Password for %s stored in the keyring\n", site.User)
	return nil
}
