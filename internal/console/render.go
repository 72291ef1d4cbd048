package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

const (
	NoContent = "no content"

	dateLayout     = "2006-01-02 15:04"
	maxCellRunes   = 48
	loadingMessage = "loading..."
)

// Render рисует состояние таблицей. Шапка и пагинация есть всегда.
func Render(w io.Writer, st State) {
	fmt.Fprintf(w, "%s  (new: %s)\n", Title, NewRoute)
	if st.Status == StatusError && st.Err != nil {
		fmt.Fprintf(w, "error: %v\n", st.Err)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Title", "Description", "Updated Date", "Action"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	switch {
	case st.Status == StatusLoading:
		table.Append([]string{loadingMessage, "", "", ""})
	case st.Status == StatusError || st.Page == nil || len(st.Page.Rows) == 0:
		table.Append([]string{NoContent, "", "", ""})
	default:
		for _, p := range st.Page.Rows {
			if p == nil {
				continue
			}
			table.Append([]string{
				truncate(p.Title),
				truncate(p.Description),
				p.UpdatedAt.Local().Format(dateLayout),
				EditRoute(p.ID) + " | del " + strconv.Itoa(p.ID),
			})
		}
	}

	table.SetFooter([]string{"", "", "", paginationFor(st).String()})
	table.Render()
}

func paginationFor(st State) Pagination {
	if st.Page == nil {
		return NewPagination(0, 0, PageLimit)
	}
	return NewPagination(st.Page.Offset, st.Page.Count, st.Page.Limit)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellRunes {
		return s
	}
	return string(r[:maxCellRunes-1]) + "…"
}

// TerminalTitle меняет заголовок окна терминала escape-последовательностью OSC 0.
func TerminalTitle(w io.Writer, previous string) func(string) func() {
	return func(title string) func() {
		fmt.Fprintf(w, "\033]0;%s\007", title)
		return func() {
			fmt.Fprintf(w, "\033]0;%s\007", previous)
		}
	}
}
