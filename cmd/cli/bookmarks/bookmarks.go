package bookmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crucial707/linkstash/cmd/cli/config"
	"github.com/crucial707/linkstash/cmd/cli/output"
	"github.com/crucial707/linkstash/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Bookmarks
// ==========================
func InitBookmarks(rootCmd *cobra.Command) {

	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage bookmarks",
	}

	bookmarksCmd.AddCommand(
		listBookmarksCmd(),
		mineBookmarksCmd(),
		getBookmarkCmd(),
		createBookmarkCmd(),
		editBookmarkCmd(),
		deleteBookmarkCmd(),
	)

	rootCmd.AddCommand(bookmarksCmd)
}

// ==========================
// LIST (all bookmarks, no auth)
// ==========================
func listBookmarksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all bookmarks",
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(config.APIURL() + "/bookmarks")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var list []models.Bookmark
			if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
				fmt.Println(err)
				return
			}
			output.RenderBookmarks(list)
		},
	}
}

// ==========================
// MINE (bookmarks owned by the logged-in user)
// ==========================
func mineBookmarksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your bookmarks",
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("GET", config.APIURL()+"/bookmarks/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var list []models.Bookmark
			if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
				fmt.Println(err)
				return
			}
			output.RenderBookmarks(list)
		},
	}
}

// ==========================
// GET (single bookmark by id, no auth)
// ==========================
func getBookmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a single bookmark",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(config.APIURL() + "/bookmarks/" + args[0])
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var out any
			json.NewDecoder(resp.Body).Decode(&out)
			if out == nil {
				fmt.Println("No bookmark with that id")
				return
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}
}

// ==========================
// CREATE
// ==========================
func createBookmarkCmd() *cobra.Command {

	var title string
	var description string
	var link string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create bookmark",
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			payload := map[string]string{
				"title":       title,
				"description": description,
				"link":        link,
			}

			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", config.APIURL()+"/bookmarks", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var out any
			json.NewDecoder(resp.Body).Decode(&out)
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&description, "description", "", "bookmark description")
	cmd.Flags().StringVar(&link, "link", "", "bookmark link")

	return cmd
}

// ==========================
// EDIT (owner only; flags left unset are unchanged)
// ==========================
func editBookmarkCmd() *cobra.Command {

	var title string
	var description string
	var link string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit bookmark",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			payload := map[string]string{}
			if cmd.Flags().Changed("title") {
				payload["title"] = title
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}
			if cmd.Flags().Changed("link") {
				payload["link"] = link
			}

			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("PUT", config.APIURL()+"/bookmarks/"+args[0], bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var out any
			json.NewDecoder(resp.Body).Decode(&out)
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new bookmark title")
	cmd.Flags().StringVar(&description, "description", "", "new bookmark description")
	cmd.Flags().StringVar(&link, "link", "", "new bookmark link")

	return cmd
}

// ==========================
// DELETE (owner only)
// ==========================
func deleteBookmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete bookmark",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/bookmarks/"+args[0], nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}

			if resp.StatusCode == http.StatusOK {
				fmt.Println("Bookmark deleted")
			} else {
				fmt.Println("Failed to delete bookmark")
			}
		},
	}
}
