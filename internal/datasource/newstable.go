package datasource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainerID is the id of the news table on the quote page.
const DefaultContainerID = "news-table"

// NewsRow is one row of the news table, as text. Nothing is interpreted yet.
type NewsRow struct {
	Cell   string // first cell, "Jan-05-24 08:00AM" or just "08:00AM"
	Title  string // text of the first link
	Link   string // href of the first link
	Source string // publisher label without parentheses, if any
}

// ExtractNewsRows returns the direct child rows of the element with id
// containerID, in document order. A missing container yields
// ErrNewsTableNotFound; an empty one yields no rows and no error.
func ExtractNewsRows(doc *Document, containerID string) ([]NewsRow, error) {
	if containerID == "" {
		containerID = DefaultContainerID
	}

	root, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("parse %s page: %w", doc.Ticker, err)
	}

	container := root.Find("#" + containerID).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%s: #%s: %w", doc.Ticker, containerID, ErrNewsTableNotFound)
	}

	var rows []NewsRow
	for _, tr := range childRows(container) {
		rows = append(rows, readRow(tr))
	}
	return rows, nil
}

// childRows collects the container's own <tr> children. The HTML parser
// wraps table rows in <tbody>, so row groups are looked through. Rows of
// nested tables are not included.
func childRows(container *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	container.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "tr":
			rows = append(rows, child)
		case "tbody", "thead", "tfoot":
			child.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
				rows = append(rows, tr)
			})
		}
	})
	return rows
}

func readRow(tr *goquery.Selection) NewsRow {
	row := NewsRow{
		Cell: strings.TrimSpace(tr.Find("td").First().Text()),
	}

	link := tr.Find("a").First()
	row.Title = cleanText(link.Text())
	row.Link, _ = link.Attr("href")

	tr.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := strings.TrimSpace(s.Text())
		if len(txt) > 2 && strings.HasPrefix(txt, "(") && strings.HasSuffix(txt, ")") {
			row.Source = strings.TrimSpace(txt[1 : len(txt)-1])
			return false
		}
		return true
	})
	return row
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
