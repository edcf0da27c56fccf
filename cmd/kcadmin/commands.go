package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tenantadmin/internal/keycloak"
	"tenantadmin/internal/platform/config"
	"tenantadmin/internal/platform/logger"
)

// idpClient is the part of the keycloak client the commands use.
type idpClient interface {
	FetchAdminToken(ctx context.Context) (*keycloak.TokenResponse, bool)
	CreateUser(ctx context.Context, req keycloak.UserRequest, token string) keycloak.CreateUserResult
	EmailExists(ctx context.Context, email, token string) (*keycloak.UsersResponse, error)
	UsernameExists(ctx context.Context, username, token string) (*keycloak.UsersResponse, error)
}

type clientFactory func() (idpClient, error)

func newClientFromEnv() (idpClient, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Keycloak.BaseURL == "" {
		return nil, errors.New("KEYCLOAK is not set")
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Server.LogLevel)
	return keycloak.New(keycloak.ConfigFrom(cfg.Keycloak),
		keycloak.WithLogger(logger.NewCategorized(log)),
	), nil
}

var errTokenUnavailable = errors.New("admin token unavailable (see log for details)")

func newRootCmd(factory clientFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "kcadmin",
		Short:         "Identity provider admin CLI",
		Long:          `Calls the identity provider's admin API using the KEYCLOAK* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("token", "", "admin bearer token; fetched with the configured credentials when empty")

	root.AddCommand(
		newTokenCmd(factory),
		newCreateUserCmd(factory),
		newExistsCmd(factory, "email-exists", "Check whether a user with this email exists",
			func(c idpClient, ctx context.Context, v, tok string) (*keycloak.UsersResponse, error) {
				return c.EmailExists(ctx, v, tok)
			}),
		newExistsCmd(factory, "username-exists", "Check whether a user with this exact username exists",
			func(c idpClient, ctx context.Context, v, tok string) (*keycloak.UsersResponse, error) {
				return c.UsernameExists(ctx, v, tok)
			}),
		newRoleCmd(),
	)
	return root
}

func newTokenCmd(factory clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Fetch an admin access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := factory()
			if err != nil {
				return err
			}
			token, ok := client.FetchAdminToken(cmd.Context())
			if !ok {
				return errTokenUnavailable
			}
			return writeJSON(cmd.OutOrStdout(), token)
		},
	}
}

func newCreateUserCmd(factory clientFactory) *cobra.Command {
	var req keycloak.UserRequest
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user with a permanent password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := factory()
			if err != nil {
				return err
			}
			token, err := resolveToken(cmd, client)
			if err != nil {
				return err
			}
			res := client.CreateUser(cmd.Context(), req, token)
			if !res.OK() {
				return errors.New(res.Message)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.UserID)
			return err
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "display name, space separated")
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&req.Role, "role", keycloak.RoleUser, "role label")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

type lookupFunc func(c idpClient, ctx context.Context, value, token string) (*keycloak.UsersResponse, error)

func newExistsCmd(factory clientFactory, use, short string, lookup lookupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " VALUE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := factory()
			if err != nil {
				return err
			}
			token, err := resolveToken(cmd, client)
			if err != nil {
				return err
			}
			resp, err := lookup(client, cmd.Context(), args[0], token)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Exists())
			return err
		},
	}
}

func newRoleCmd() *cobra.Command {
	var accessToken string
	cmd := &cobra.Command{
		Use:   "role [CLAIM...]",
		Short: "Derive the role and group from claims or an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			claims := args
			if accessToken != "" {
				roles, err := keycloak.RealmRoles(accessToken)
				if err != nil {
					return err
				}
				claims = roles
			}
			role := keycloak.DeriveRole(claims)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "role=%s group=%s\n", role, keycloak.DeriveGroup(role))
			return err
		},
	}
	cmd.Flags().StringVar(&accessToken, "access-token", "", "read realm roles from this JWT instead of arguments")
	return cmd
}

func resolveToken(cmd *cobra.Command, client idpClient) (string, error) {
	if token, _ := cmd.Flags().GetString("token"); strings.TrimSpace(token) != "" {
		return token, nil
	}
	token, ok := client.FetchAdminToken(cmd.Context())
	if !ok {
		return "", errTokenUnavailable
	}
	return token.AccessToken, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
