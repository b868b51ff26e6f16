package main

import (
	"fmt"
	"os"

	"github.com/crucial707/linkstash/cmd/cli/auth"
	"github.com/crucial707/linkstash/cmd/cli/bookmarks"
	"github.com/crucial707/linkstash/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	bookmarks.InitBookmarks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
