package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/linkstash/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands (signup, login, logout) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), loginCmd(), logoutCmd())
}

// signupCmd creates an account and stores the returned access token locally.
func signupCmd() *cobra.Command {
	var email string
	var pass string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a Linkstash account",
		Long:  "Create an account with the Linkstash API and store an access token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || pass == "" {
				return fmt.Errorf("email and password are required")
			}

			var out struct {
				AccessToken string `json:"access_token"`
			}
			if err := callJSONEndpoint(http.DefaultClient, "/auth/signup", map[string]string{"email": email, "password": pass}, &out); err != nil {
				return fmt.Errorf("failed to sign up: %w", err)
			}
			if out.AccessToken == "" {
				return fmt.Errorf("signup succeeded but no token returned")
			}

			if err := config.SaveToken(out.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Account created. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address to register")
	cmd.Flags().StringVar(&pass, "password", "", "Password for the new account")

	return cmd
}

// loginCmd logs in and stores the access token locally.
func loginCmd() *cobra.Command {
	var email string
	var pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Linkstash API",
		Long:  "Authenticate with the Linkstash API and store an access token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || pass == "" {
				return fmt.Errorf("email and password are required")
			}

			var out struct {
				AccessToken string `json:"access_token"`
			}
			if err := callJSONEndpoint(http.DefaultClient, "/auth/signin", map[string]string{"email": email, "password": pass}, &out); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if out.AccessToken == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address to authenticate as")
	cmd.Flags().StringVar(&pass, "password", "", "Account password")

	return cmd
}

// logoutCmd removes the locally stored token.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func callJSONEndpoint(client *http.Client, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", config.APIURL()+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}

	return nil
}
