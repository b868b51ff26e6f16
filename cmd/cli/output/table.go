package output

import (
	"os"

	"github.com/crucial707/linkstash/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderBookmarks prints bookmarks as a pretty table to stdout.
func RenderBookmarks(bookmarks []models.Bookmark) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	t.AppendHeader(table.Row{"ID", "TITLE", "LINK", "DESCRIPTION", "CREATED"})
	for _, b := range bookmarks {
		t.AppendRow(table.Row{b.ID, b.Title, b.Link, b.Description, b.CreatedAt.Format("2006-01-02 15:04")})
	}

	t.Render()
}
