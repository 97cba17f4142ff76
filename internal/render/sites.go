package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sourceplane/udpublish/internal/model"
)

// SitesTable prints the configured sites. Passwords are never shown.
func SitesTable(w io.Writer, sites []model.Site) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "URL", "USER", "ADMIN", "TRUST ALL CERTS"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetRowLine(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, site := range sites {
		table.Append([]string{
			site.Name,
			site.URL,
			site.User,
			strconv.FormatBool(site.AdminUser),
			strconv.FormatBool(site.TrustAllCerts),
		})
	}
	table.Render()
}
